package play

import (
	"os"
	"testing"

	"github.com/amarchess/amarchess/internal/logging"
)

func TestMain(m *testing.M) {
	// Searches log every iteration at debug level.
	if err := logging.Setup("warn", false, os.Stderr); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
