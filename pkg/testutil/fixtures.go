package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Fixed identifiers and dates for deterministic testing.
var (
	TestCaseID1  = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestCaseID2  = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestFirstDue = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
)
