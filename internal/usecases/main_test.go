package usecases_test

import (
	"os"
	"testing"

	"piaas.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	os.Exit(m.Run())
}
