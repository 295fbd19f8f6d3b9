package calendar

import (
	"slices"
	"time"

	"clover/internal/models"
)

// Schedule is an in-memory list of posts that stays sorted ascending by
// scheduled time after every change. It is owned by a single view and is not
// safe for concurrent use.
type Schedule struct {
	posts []models.ScheduledPost
}

func byScheduledAt(a, b models.ScheduledPost) int {
	return a.ScheduledAt.Compare(b.ScheduledAt)
}

// Replace swaps the whole list, e.g. after a fresh fetch.
func (s *Schedule) Replace(posts []models.ScheduledPost) {
	s.posts = slices.Clone(posts)
	slices.SortStableFunc(s.posts, byScheduledAt)
}

// Upsert inserts p or replaces the post with the same ID.
func (s *Schedule) Upsert(p models.ScheduledPost) {
	if i := s.index(p.ID); i >= 0 {
		s.posts[i] = p
	} else {
		s.posts = append(s.posts, p)
	}
	slices.SortStableFunc(s.posts, byScheduledAt)
}

// Remove evicts the post with the given ID and reports whether it was present.
func (s *Schedule) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.posts = slices.Delete(s.posts, i, i+1)
	return true
}

// Posts returns a copy of the sorted list.
func (s *Schedule) Posts() []models.ScheduledPost {
	return slices.Clone(s.posts)
}

func (s *Schedule) OnDay(day time.Time) []models.ScheduledPost {
	return PostsOnDay(s.posts, day)
}

func (s *Schedule) Len() int {
	return len(s.posts)
}

func (s *Schedule) index(id string) int {
	return slices.IndexFunc(s.posts, func(p models.ScheduledPost) bool { return p.ID == id })
}
