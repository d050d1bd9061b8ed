package adaptors

import (
	"context"

	"website_speed_test/internal/domain/models"
)

type SpeedTestClient interface {
	Fetch(ctx context.Context, targetURL string) (*models.SpeedTestReports, error)
}
