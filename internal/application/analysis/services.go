package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aurainsight/aura-backend/internal/application"
	appreports "github.com/aurainsight/aura-backend/internal/application/reports"
	domai "github.com/aurainsight/aura-backend/internal/domain/ai"
	"github.com/aurainsight/aura-backend/internal/domain/analysisfailures"
	domreports "github.com/aurainsight/aura-backend/internal/domain/reports"
	"github.com/aurainsight/aura-backend/internal/infra/ai/prompt"
)

// ErrInvalidInput indicates the narrative or core question was empty. No
// external call is made in that case.
var ErrInvalidInput = errors.New("narrative and core question are required")

// ReportStore is the slice of the report gateway the orchestrator needs.
type ReportStore interface {
	Create(ctx context.Context, owner string, cmd appreports.CreateCommand) (domreports.ReportID, error)
}

// MediaStore persists uploaded attachments under the owner's prefix and
// returns their URLs. Optional; a nil store skips uploads.
type MediaStore interface {
	Upload(ctx context.Context, owner, name, contentType string, data []byte) (string, error)
}

// Service implements the analyze use-case: validate, build one generation
// request, call the model once, persist for non-anonymous owners.
type Service struct {
	Gen      domai.Generator
	Store    ReportStore
	Media    MediaStore
	Failures analysisfailures.Repository
	Clock    application.Clock
}

// AnalyzeCommand carries one analysis request. Owner comes from the
// authorization layer, never from the request body.
type AnalyzeCommand struct {
	Owner        string
	Narrative    string
	CoreQuestion string
	DetailPoints []string
	Media        []domai.Attachment
	Persist      bool
}

type AnalyzeResult struct {
	ReportID      string `json:"report_id,omitempty"`
	HTMLReport    string `json:"html_report"`
	PromptVersion string `json:"prompt_version"`
	Warning       string `json:"warning,omitempty"`
}

func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*AnalyzeResult, error) {
	if strings.TrimSpace(cmd.Narrative) == "" || strings.TrimSpace(cmd.CoreQuestion) == "" {
		return nil, ErrInvalidInput
	}

	req := domai.Request{
		System:      prompt.GetSystemPrompt(),
		User:        prompt.GetUserPrompt(cmd.CoreQuestion, cmd.Narrative, cmd.DetailPoints, len(cmd.Media) > 0),
		Attachments: cmd.Media,
	}

	html, err := s.Gen.Generate(ctx, req)
	if err != nil {
		s.recordFailure(ctx, cmd, "generation", err)
		return nil, err
	}

	result := &AnalyzeResult{HTMLReport: html, PromptVersion: prompt.Version}
	if !cmd.Persist {
		return result, nil
	}

	mediaURLs := s.uploadMedia(ctx, cmd)

	id, err := s.Store.Create(ctx, cmd.Owner, appreports.CreateCommand{
		Title:         cmd.CoreQuestion,
		Narrative:     cmd.Narrative,
		DetailPoints:  cmd.DetailPoints,
		HTMLReport:    html,
		PromptVersion: prompt.Version,
		MediaURLs:     mediaURLs,
	})
	if err != nil {
		// The generation already succeeded and the user paid for it, so the
		// content is still returned; the caller sees a warning instead of a
		// hard failure.
		s.recordFailure(ctx, cmd, "persistence", err)
		result.Warning = "report generated but could not be saved"
		return result, nil
	}

	result.ReportID = string(id)
	return result, nil
}

// uploadMedia stores attachments best-effort; a failed upload drops that
// attachment's URL but never fails the analysis.
func (s *Service) uploadMedia(ctx context.Context, cmd AnalyzeCommand) []string {
	if s.Media == nil || len(cmd.Media) == 0 {
		return nil
	}
	var urls []string
	for i, att := range cmd.Media {
		name := fmt.Sprintf("media-%d", i)
		url, err := s.Media.Upload(ctx, cmd.Owner, name, att.ContentType, att.Data)
		if err != nil {
			log.Printf("warning: could not store attachment %d for owner %s: %v", i, cmd.Owner, err)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

func (s *Service) recordFailure(ctx context.Context, cmd AnalyzeCommand, phase string, cause error) {
	if s.Failures == nil {
		return
	}
	kind := "failed"
	switch {
	case errors.Is(cause, domai.ErrGenerationUnavailable):
		kind = "unavailable"
	case phase == "persistence":
		kind = "persistence"
	}
	clock := s.Clock
	if clock == nil {
		clock = application.SystemClock{}
	}
	f := &analysisfailures.Failure{
		OwnerID:   cmd.Owner,
		Title:     cmd.CoreQuestion,
		Kind:      kind,
		Message:   cause.Error(),
		CreatedAt: clock.Now().UTC(),
	}
	if err := s.Failures.Save(ctx, f); err != nil {
		log.Printf("warning: could not record analysis failure: %v", err)
	}
}
