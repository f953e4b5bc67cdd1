package jobs

import (
	"context"
	"sync"
	"time"

	"speech-enrichment-service/internal/enrich"
	"speech-enrichment-service/internal/events"
	"speech-enrichment-service/internal/models"
	"speech-enrichment-service/internal/observability/logging"
	"speech-enrichment-service/internal/observability/metrics"
	"speech-enrichment-service/internal/service/prosody"
	"speech-enrichment-service/internal/service/transcript"
	"speech-enrichment-service/internal/service/vision"
)

// Orchestrator fans a submitted recording out to the modality providers,
// enriches as soon as the fast modalities (transcript, prosody) are in, and
// upgrades the report when the slow vision call lands.
//
// Transcript is the spine of the report: without it the job fails. Prosody
// and vision failures only degrade the report.
type Orchestrator struct {
	store      *Store
	enricher   *enrich.Enricher
	transcript transcript.Adapter
	vision     vision.Adapter
	prosody    prosody.Adapter
	publisher  *events.Publisher
	metrics    *metrics.Metrics
}

// NewOrchestrator wires the orchestrator from its collaborators.
func NewOrchestrator(store *Store, enricher *enrich.Enricher, t transcript.Adapter, v vision.Adapter, p prosody.Adapter, pub *events.Publisher) *Orchestrator {
	return &Orchestrator{
		store:      store,
		enricher:   enricher,
		transcript: t,
		vision:     v,
		prosody:    p,
		publisher:  pub,
		metrics:    metrics.DefaultMetrics,
	}
}

// reportEvent is the Kafka payload for a finished (or degraded) report.
type reportEvent struct {
	EventType string                 `json:"eventType"`
	JobID     string                 `json:"jobId"`
	Result    *models.AnalysisResult `json:"result"`
}

// Submit registers a job for the media URL and starts collection in the
// background. The returned job is immediately pollable.
func (o *Orchestrator) Submit(ctx context.Context, mediaURL string) *Job {
	job := o.store.Create(mediaURL)
	o.metrics.RecordJobStart()

	logger := logging.WithJob(job.ID)
	logger.Info().Str("mediaUrl", mediaURL).Msg("Job submitted")

	go o.process(context.WithoutCancel(ctx), job)
	return job
}

// process runs the fan-out for one job: dispatch vision, collect transcript
// and prosody concurrently, then enrich with whatever arrived.
func (o *Orchestrator) process(ctx context.Context, job *Job) {
	logger := logging.WithJob(job.ID)

	// Dispatch the slow modality first so it runs while we collect the
	// fast ones. A dispatch failure just means no vision for this job.
	visionCall := ""
	if o.vision != nil {
		callID, err := o.vision.Submit(ctx, job.MediaURL)
		if err != nil {
			logger.Warn().Err(err).Msg("Vision dispatch failed, continuing without vision")
		} else {
			visionCall = callID
			job.SetVisionCall(callID)
		}
	}

	var (
		wg            sync.WaitGroup
		t             *models.Transcript
		transcriptErr error
		prosodyFrames []models.ProsodyFrame
		prosodyErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		t, transcriptErr = o.transcript.Transcribe(ctx, job.MediaURL)
	}()
	go func() {
		defer wg.Done()
		if o.prosody == nil {
			return
		}
		prosodyFrames, prosodyErr = o.prosody.Extract(ctx, job.MediaURL)
	}()
	wg.Wait()

	if transcriptErr != nil || !t.Completed() {
		logger.Error().Err(transcriptErr).Msg("Transcription failed, failing job")
		o.failJob(job, "transcription failed")
		return
	}
	if prosodyErr != nil {
		logger.Warn().Err(prosodyErr).Msg("Prosody extraction failed, continuing without prosody")
		prosodyFrames = nil
	}

	job.SetSources(t, prosodyFrames)

	if visionCall == "" {
		// Nothing left to wait for; this report is as complete as it gets.
		o.finishJob(ctx, job, nil)
		return
	}

	// Produce the degraded report now so pollers see something useful
	// while vision is still running.
	enrichStart := time.Now()
	result := o.enricher.Analyze(t, nil, prosodyFrames)
	job.SetResult(&result)
	o.recordReport(&result, time.Since(enrichStart).Seconds())

	if err := job.Lifecycle.AwaitVision(); err != nil {
		logger.Error().Err(err).Msg("Could not move job to awaiting vision")
		return
	}

	logger.Info().Str("visionCall", visionCall).Msg("Degraded report ready, awaiting vision")
	if err := o.publisher.PublishDegraded(ctx, job.ID, reportEvent{
		EventType: "enrichment.report.degraded",
		JobID:     job.ID,
		Result:    &result,
	}); err != nil {
		logger.Warn().Err(err).Msg("Failed to publish degraded report")
	}
}

// Poll returns the job's current snapshot, collecting the pending vision
// result first when there is one. The vision check is non-blocking: if the
// call is still running the degraded snapshot is returned as-is.
func (o *Orchestrator) Poll(ctx context.Context, jobID string) (Status, bool) {
	job, ok := o.store.Get(jobID)
	if !ok {
		return Status{}, false
	}

	if job.Lifecycle.IsAwaitingVision() {
		o.collectVision(ctx, job)
	}

	return job.Snapshot(), true
}

// collectVision polls the in-flight vision call once. When the call lands
// the job is re-enriched with all three modalities; when the poll fails the
// degraded report is promoted to final. "Silence > bad data" applies to the
// modality, not the job: a report we already have always beats no report.
//
// Serialized per job: concurrent status polls queue here, and whoever runs
// after the job completed sees the state change and returns without
// touching the provider.
func (o *Orchestrator) collectVision(ctx context.Context, job *Job) {
	job.collectMu.Lock()
	defer job.collectMu.Unlock()

	if !job.Lifecycle.IsAwaitingVision() {
		return
	}

	logger := logging.WithJob(job.ID)

	frames, done, err := o.vision.Poll(ctx, job.VisionCall())
	if err != nil {
		logger.Warn().Err(err).Msg("Vision poll failed, finishing with degraded report")
		o.finishJob(ctx, job, nil)
		return
	}
	if !done {
		return
	}

	logger.Info().Int("frames", len(frames)).Msg("Vision landed, upgrading report")
	o.finishJob(ctx, job, frames)
}

// finishJob produces the final report from the stored sources plus the given
// vision frames (possibly nil) and completes the job.
func (o *Orchestrator) finishJob(ctx context.Context, job *Job, frames []models.VisionFrame) {
	logger := logging.WithJob(job.ID)

	t, prosodyFrames := job.Sources()
	enrichStart := time.Now()
	result := o.enricher.Analyze(t, frames, prosodyFrames)
	durationSeconds := time.Since(enrichStart).Seconds()
	job.SetResult(&result)

	transitioned, err := job.Lifecycle.Complete()
	if err != nil {
		logger.Error().Err(err).Msg("Could not complete job")
		return
	}
	if !transitioned {
		// Another caller already completed the job; its report and
		// terminal side effects stand.
		return
	}
	o.recordReport(&result, durationSeconds)
	o.metrics.RecordJobEnd(true, time.Since(job.CreatedAt).Seconds())

	logger.Info().
		Int("words", len(result.EnrichedTranscript.Words)).
		Float64("fluency", float64(result.EnrichedTranscript.SentenceAnalysis.FluencyScore)).
		Msg("Job complete")

	if err := o.publisher.PublishComplete(ctx, job.ID, reportEvent{
		EventType: "enrichment.report.complete",
		JobID:     job.ID,
		Result:    &result,
	}); err != nil {
		logger.Warn().Err(err).Msg("Failed to publish complete report")
	}
}

// failJob marks the job failed.
func (o *Orchestrator) failJob(job *Job, reason string) {
	job.SetFailure(reason)
	if job.Lifecycle.Fail() {
		o.metrics.RecordJobEnd(false, time.Since(job.CreatedAt).Seconds())
	}
}

// recordReport feeds report-level counters.
func (o *Orchestrator) recordReport(result *models.AnalysisResult, durationSeconds float64) {
	degraded := 0
	for _, w := range result.EnrichedTranscript.Words {
		for _, tag := range w.Tags {
			o.metrics.RecordTag(string(tag))
			if tag == models.TagError {
				degraded++
			}
		}
	}
	o.metrics.RecordEnrichment(len(result.EnrichedTranscript.Words), degraded, durationSeconds)
}
