package usecase

import (
	"context"
	"sync"

	"medtrack/internal/modules/auth/domain"
	"medtrack/internal/modules/auth/dto"
	authin "medtrack/internal/modules/auth/port/in"
	"medtrack/internal/modules/auth/service"
	apperrors "medtrack/internal/platform/errors"
)

// Interactor owns the session state machine. Every init/login attempt gets a
// monotonic sequence number; a completing attempt publishes its result only
// if it is still the newest one, so a stale response can never clobber the
// state written by a later attempt.
type Interactor struct {
	svc *service.SessionService

	mu     sync.Mutex
	state  domain.State
	latest uint64
}

func NewInteractor(svc *service.SessionService) authin.Usecase {
	return &Interactor{svc: svc, state: domain.Initial()}
}

func (i *Interactor) Init(ctx context.Context) dto.SessionOutput {
	seq := i.begin()
	token, err := i.svc.StoredToken(ctx)
	if err != nil {
		i.apply(seq, domain.State.Reset)
		return i.Current()
	}
	user, err := i.svc.FetchUser(ctx, token)
	if err != nil {
		// Skip the discard when a newer attempt has taken over; its token
		// may already be on disk.
		if i.stillLatest(seq) {
			_ = i.svc.DiscardToken(ctx)
		}
		i.apply(seq, func(s domain.State) domain.State {
			return s.Fail(domain.MsgSessionExpired)
		})
		return i.Current()
	}
	i.apply(seq, func(s domain.State) domain.State {
		return s.Authenticate(user, token)
	})
	return i.Current()
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error) {
	seq := i.begin()
	token, err := i.svc.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		// A failed credential exchange surfaces to the caller only; the
		// store records no error message. Only a failed profile fetch does.
		i.apply(seq, domain.State.StopLoading)
		return i.Current(), err
	}
	user, err := i.svc.FetchUser(ctx, token)
	if err != nil {
		if i.stillLatest(seq) {
			_ = i.svc.DiscardToken(ctx)
		}
		msg := apperrors.Message(err, domain.MsgLoginFailed)
		i.apply(seq, func(s domain.State) domain.State {
			return s.Fail(msg)
		})
		return i.Current(), err
	}
	i.apply(seq, func(s domain.State) domain.State {
		return s.Authenticate(user, token)
	})
	return i.Current(), nil
}

func (i *Interactor) Logout() dto.SessionOutput {
	_ = i.svc.DiscardToken(context.Background())
	i.mu.Lock()
	// Bumping the sequence invalidates any in-flight init/login attempt.
	i.latest++
	i.state = i.state.Reset()
	i.mu.Unlock()
	return i.Current()
}

func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) (dto.RegisterOutput, error) {
	result, err := i.svc.Register(ctx, input.Name, input.Email, input.Password)
	if err != nil {
		return dto.RegisterOutput{}, err
	}
	return dto.RegisterOutput{Message: result.Message, UserID: result.UserID}, nil
}

func (i *Interactor) Current() dto.SessionOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	return dto.SessionOutput{
		UserID:        i.state.User.UserID,
		Email:         i.state.User.Email,
		Name:          i.state.User.Name,
		Role:          i.state.User.Role,
		Token:         i.state.Token,
		Authenticated: i.state.Authenticated(),
		Loading:       i.state.Loading(),
		Err:           i.state.Err,
	}
}

func (i *Interactor) Token() (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.state.Authenticated() || i.state.Token == "" {
		return "", apperrors.ErrNotLoggedIn
	}
	return i.state.Token, nil
}

func (i *Interactor) begin() uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.latest++
	i.state = i.state.BeginLoading()
	return i.latest
}

func (i *Interactor) stillLatest(seq uint64) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return seq == i.latest
}

func (i *Interactor) apply(seq uint64, transition func(domain.State) domain.State) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if seq != i.latest {
		return
	}
	i.state = transition(i.state)
}
