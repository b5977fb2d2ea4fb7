package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with the given role. The password hash is a placeholder.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Username:     "user-" + suffix,
		Email:        "user-" + suffix + "@example.com",
		Fullname:     "Test User " + suffix,
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, username, email, fullname, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Username, user.Email, user.Fullname, user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedRecipient creates a recipient office with a unique name.
func SeedRecipient(t *testing.T, pool *pgxpool.Pool) domain.Recipient {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	initial := "R" + suffix[:3]
	r := domain.Recipient{
		Code:    uuid.New(),
		Name:    "Office " + suffix,
		Initial: &initial,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO recipients (recipient_code, recipient_name, initial)
		 VALUES ($1, $2, $3)
		 RETURNING recipient_no, created_at, updated_at`,
		r.Code, r.Name, r.Initial,
	).Scan(&r.No, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedRecipient: %v", err)
	}

	return r
}

// SeedTracker creates a non-confidential tracker with a unique serial number.
func SeedTracker(t *testing.T, pool *pgxpool.Pool) domain.Tracker {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	tr := domain.Tracker{
		ID:            uuid.New(),
		SerialNumber:  "TEST-" + suffix,
		FromName:      "Sender " + suffix,
		DocumentTitle: "Document " + suffix,
		DateReceived:  time.Now().UTC().Truncate(24 * time.Hour),
		LCEAction:     domain.LCEActionPending,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO trackers (id, serial_number, from_name, document_title, date_received)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		tr.ID, tr.SerialNumber, tr.FromName, tr.DocumentTitle, tr.DateReceived,
	).Scan(&tr.CreatedAt, &tr.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedTracker: %v", err)
	}

	return tr
}

// SeedLeg assigns a tracker to a recipient with status pending.
func SeedLeg(t *testing.T, pool *pgxpool.Pool, trackerID, recipientID uuid.UUID) domain.TrackerRecipient {
	t.Helper()
	ctx := context.Background()

	leg := domain.TrackerRecipient{
		ID:          uuid.New(),
		TrackerID:   trackerID,
		RecipientID: recipientID,
		Status:      domain.StatusPending,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO tracker_recipients (id, tracker_id, recipient_id)
		 VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		leg.ID, leg.TrackerID, leg.RecipientID,
	).Scan(&leg.CreatedAt, &leg.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedLeg: %v", err)
	}

	return leg
}
