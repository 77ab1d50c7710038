// repository/member_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/fadhlanhapp/volleyleague-backend/models"
)

var (
	_ MemberDirectory = (*MemberRepository)(nil)
	_ MemberDirectory = (*MemoryMemberRepository)(nil)
)

// MemberRepository resolves league members stored in Postgres
type MemberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// MemberExists reports whether a member with the given id exists
func (r *MemberRepository) MemberExists(ctx context.Context, memberID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM members WHERE id = $1)", memberID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up member: %w", err)
	}
	return exists, nil
}

// MemoryMemberRepository is an in-process member directory
type MemoryMemberRepository struct {
	mu      sync.RWMutex
	members map[string]models.Member
}

func NewMemoryMemberRepository(members ...models.Member) *MemoryMemberRepository {
	r := &MemoryMemberRepository{members: make(map[string]models.Member)}
	for _, member := range members {
		r.members[member.ID] = member
	}
	return r
}

func (r *MemoryMemberRepository) Add(member models.Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[member.ID] = member
}

func (r *MemoryMemberRepository) MemberExists(_ context.Context, memberID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[memberID]
	return ok, nil
}
