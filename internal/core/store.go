package core

import (
	"fmt"
	"sync"

	"github.com/dkeye/muc/internal/domain"
)

// MembershipStore owns the members currently in one room, in join order.
// Check-and-mutate happens under one lock so concurrent adds of the same
// nickname cannot both succeed.
type MembershipStore struct {
	mu      sync.RWMutex
	members []*domain.Member
}

func NewMembershipStore() *MembershipStore {
	return &MembershipStore{}
}

func (s *MembershipStore) Add(m *domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(m.Nickname()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateMember, m.Nickname())
	}
	s.members = append(s.members, m)
	return nil
}

func (s *MembershipStore) Remove(m *domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(m.Nickname())
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, m.Nickname())
	}
	// fresh backing array so List copies never share storage with writers
	out := make([]*domain.Member, 0, len(s.members)-1)
	out = append(out, s.members[:i]...)
	s.members = append(out, s.members[i+1:]...)
	return nil
}

func (s *MembershipStore) FindByNickname(nickname string) (*domain.Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(nickname); i >= 0 {
		return s.members[i], true
	}
	return nil, false
}

// List returns a copy; later mutations are not reflected in it.
func (s *MembershipStore) List() []*domain.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Member, len(s.members))
	copy(out, s.members)
	return out
}

func (s *MembershipStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}

// caller holds mu
func (s *MembershipStore) indexOf(nickname string) int {
	for i, m := range s.members {
		if m.Nickname() == nickname {
			return i
		}
	}
	return -1
}
