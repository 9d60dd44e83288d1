package session

import (
	"context"
	"fmt"
)

type ResumeChoice string

const (
	ResumeFromSaved    ResumeChoice = "resume_from_saved"
	StartFromBeginning ResumeChoice = "start_from_beginning"
)

type ResolveResumeParams struct {
	SessionId string
	Choice    ResumeChoice
}

type ResolveResumeResponse struct {
	// SeekDeferred reports that the adapter was not ready and the seek is
	// being held until it is.
	SeekDeferred bool
}

// ResolveResume applies the user's resume choice. The prompt resolves
// exactly once per load; a second resolution attempt fails.
func (s *service) ResolveResume(ctx context.Context, params *ResolveResumeParams) (ResolveResumeResponse, error) {
	sess, err := s.getSession(params.SessionId)
	if err != nil {
		return ResolveResumeResponse{}, fmt.Errorf("failed to get session: %w", err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.resumeState != ResumePromptPending {
		return ResolveResumeResponse{}, ErrResumeNotPending
	}
	sess.resumeState = ResumeResolved

	if params.Choice != ResumeFromSaved {
		return ResolveResumeResponse{}, nil
	}

	deferred := !sess.adapter.Ready()
	if deferred {
		target := sess.savedPosition
		sess.state.PendingSeekTarget = &target
	}

	// the adapter holds an early seek itself and replays it once ready
	if err := sess.adapter.Seek(sess.savedPosition); err != nil {
		return ResolveResumeResponse{}, fmt.Errorf("failed to seek: %w", err)
	}

	return ResolveResumeResponse{SeekDeferred: deferred}, nil
}
