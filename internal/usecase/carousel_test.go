package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

type slideSource struct {
	mu     sync.Mutex
	slides []entity.HeroSlide
}

func (s *slideSource) get() []entity.HeroSlide {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.HeroSlide(nil), s.slides...)
}

func (s *slideSource) set(slides []entity.HeroSlide) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slides = slides
}

func threeSlides() []entity.HeroSlide {
	return []entity.HeroSlide{{ID: "a"}, {ID: "b"}, {ID: "c"}}
}

func TestCarousel_ManualNavigationWraps(t *testing.T) {
	src := &slideSource{slides: threeSlides()}
	c := NewCarousel(src.get, time.Hour)

	slide, idx, total, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "a", slide.ID)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 3, total)

	c.Prev()
	slide, idx, _, _ = c.Current()
	assert.Equal(t, "c", slide.ID)
	assert.Equal(t, 2, idx)

	c.Next()
	slide, _, _, _ = c.Current()
	assert.Equal(t, "a", slide.ID)

	require.NoError(t, c.Select(1))
	slide, _, _, _ = c.Current()
	assert.Equal(t, "b", slide.ID)

	assert.ErrorIs(t, c.Select(3), ErrSlideNotFound)
	assert.ErrorIs(t, c.Select(-1), ErrSlideNotFound)
}

func TestCarousel_EmptySource(t *testing.T) {
	src := &slideSource{}
	c := NewCarousel(src.get, 0)

	_, _, total, ok := c.Current()
	assert.False(t, ok)
	assert.Zero(t, total)

	c.Next()
	c.Prev()
	_, _, _, ok = c.Current()
	assert.False(t, ok)
}

func TestCarousel_ShrinkingSourceStaysInRange(t *testing.T) {
	src := &slideSource{slides: threeSlides()}
	c := NewCarousel(src.get, time.Hour)
	require.NoError(t, c.Select(2))

	src.set([]entity.HeroSlide{{ID: "x"}, {ID: "y"}})
	slide, idx, total, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, 2, total)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "x", slide.ID)
}

func TestCarousel_RunAdvancesAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &slideSource{slides: threeSlides()}
	c := NewCarousel(src.get, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool {
		_, idx, _, _ := c.Current()
		return idx != 0
	}, time.Second, 5*time.Millisecond)

	// qo'lda o'tish taymerni to'xtatmaydi
	c.Next()
	c.Prev()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("carousel did not stop")
	}
}
