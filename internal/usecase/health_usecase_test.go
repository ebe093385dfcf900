package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func domainStatusChange() domain.StatusChange {
	return domain.StatusChange{
		CandidateEmail: "c@x.com",
		JobTitle:       "Dev",
		CompanyName:    "Acme",
		Status:         domain.ApplicationStatusAccepted,
	}
}

func TestHealthCheck(t *testing.T) {
	up := usecase.PingerFunc(func(context.Context) error { return nil })
	down := usecase.PingerFunc(func(context.Context) error { return errors.New("refused") })

	status, ok := usecase.NewHealthUsecase(map[string]usecase.Pinger{"database": up, "redis": nil}).
		Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"status": "ok", "database": "up"}, status)

	status, ok = usecase.NewHealthUsecase(map[string]usecase.Pinger{"database": up, "redis": down}).
		Check(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "down", status["redis"])
}
