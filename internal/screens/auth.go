package screens

import (
	"context"
	"strings"

	"airide/internal/api"
	"airide/internal/models"
	"airide/internal/session"
)

// AuthStep is where the sign-in flow stands.
type AuthStep int

const (
	StepPhone AuthStep = iota
	StepCode
	StepUserType
	StepDone
)

func (s AuthStep) String() string {
	switch s {
	case StepPhone:
		return "phone"
	case StepCode:
		return "code"
	case StepUserType:
		return "user-type"
	case StepDone:
		return "done"
	}
	return "unknown"
}

// AuthScreen asks for a phone number, then for the code sent to it.
type AuthScreen struct {
	View

	api     AuthAPI
	session *session.Store

	Phone string
	Code  string
	step  AuthStep
}

func NewAuthScreen(a AuthAPI, s *session.Store) *AuthScreen {
	return &AuthScreen{api: a, session: s}
}

func (s *AuthScreen) Step() AuthStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// SendCode requests a verification code for Phone.
func (s *AuthScreen) SendCode() error {
	phone := strings.TrimSpace(s.Phone)
	if phone == "" {
		return invalid("phone", "Please enter your phone number")
	}
	_, err := run(&s.View, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.api.SendCode(ctx, phone)
	}, func(context.Context, struct{}) {
		s.step = StepCode
	})
	return err
}

// Verify checks Code. A known user is signed in straight away. An unknown
// phone moves the flow on to StepUserType and returns a nil user; the
// verification token it got is held in the session until sign-up.
func (s *AuthScreen) Verify() (*models.User, error) {
	phone := strings.TrimSpace(s.Phone)
	code := strings.TrimSpace(s.Code)
	if phone == "" {
		return nil, invalid("phone", "Please enter your phone number")
	}
	if code == "" {
		return nil, invalid("code", "Please enter the verification code")
	}

	res, err := run(&s.View, func(ctx context.Context) (*api.VerifyResult, error) {
		return s.api.VerifyCode(ctx, phone, code)
	}, func(ctx context.Context, res *api.VerifyResult) {
		if res.IsNewUser || res.User == nil {
			if res.Token != "" {
				s.session.SetToken(ctx, res.Token)
			}
			s.step = StepUserType
			return
		}
		s.session.SetUser(ctx, *res.User)
		if res.Token != "" {
			s.session.SetToken(ctx, res.Token)
		}
		s.step = StepDone
	})
	if err != nil {
		return nil, err
	}
	if res.IsNewUser {
		return nil, nil
	}
	return res.User, nil
}

// UserTypeScreen finishes sign-up for a new phone number.
type UserTypeScreen struct {
	View

	api     AuthAPI
	session *session.Store

	Phone    string
	UserType string
	Language string
	// VerificationToken starts as the token left in the session by
	// AuthScreen.Verify.
	VerificationToken string
}

func NewUserTypeScreen(a AuthAPI, s *session.Store, phone string) *UserTypeScreen {
	return &UserTypeScreen{
		api:               a,
		session:           s,
		Phone:             phone,
		Language:          models.LanguageEnglish,
		VerificationToken: s.Token(),
	}
}

// Submit registers the user and signs them in.
func (s *UserTypeScreen) Submit() (*models.User, error) {
	phone := strings.TrimSpace(s.Phone)
	if phone == "" {
		return nil, invalid("phone", "Please enter your phone number")
	}
	if !models.ValidUserType(s.UserType) {
		return nil, invalid("userType", "Choose rider or driver")
	}
	lang := s.Language
	if lang == "" {
		lang = models.LanguageEnglish
	}
	if !models.ValidLanguage(lang) {
		return nil, invalid("language", "Choose English or Amharic")
	}
	if s.VerificationToken == "" {
		return nil, invalid("code", "Verify your phone number first")
	}

	type registered struct {
		user  *models.User
		token string
	}
	out, err := run(&s.View, func(ctx context.Context) (registered, error) {
		u, tok, err := s.api.RegisterUser(ctx, api.RegisterUserRequest{
			Phone:             phone,
			UserType:          s.UserType,
			Language:          lang,
			VerificationToken: s.VerificationToken,
		})
		return registered{u, tok}, err
	}, func(ctx context.Context, r registered) {
		s.session.SetUser(ctx, *r.user)
		if r.token != "" {
			s.session.SetToken(ctx, r.token)
		}
	})
	if err != nil {
		return nil, err
	}
	return out.user, nil
}
