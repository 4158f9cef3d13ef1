package screens

import (
	"context"
	"time"

	"airide/internal/api"
	"airide/internal/models"
)

// AuthAPI is what the sign-in screens call. *api.Client satisfies it, as it
// does every interface in this file.
type AuthAPI interface {
	SendCode(ctx context.Context, phone string) error
	VerifyCode(ctx context.Context, phone, code string) (*api.VerifyResult, error)
	RegisterUser(ctx context.Context, in api.RegisterUserRequest) (*models.User, string, error)
}

type DriverAPI interface {
	RegisterDriver(ctx context.Context, in api.RegisterDriverRequest) (*models.Driver, error)
	SetDriverOnline(ctx context.Context, driverID string, online bool) (*models.Driver, error)
	PostLocation(ctx context.Context, driverID string, loc api.LocationUpdate) (*models.Driver, error)
	GetDriver(ctx context.Context, driverID string) (*models.Driver, error)
}

type EarningsAPI interface {
	GetEarnings(ctx context.Context, driverID string, start, end time.Time) (*models.EarningsSummary, error)
}

type TripAPI interface {
	CreateTrip(ctx context.Context, driverID string, fare float64) (*models.Trip, error)
}

type StatusAPI interface {
	ListStatusChecks(ctx context.Context) ([]models.StatusCheck, error)
	CreateStatusCheck(ctx context.Context, clientName string) (*models.StatusCheck, error)
}
