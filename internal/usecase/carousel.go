package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	logx "github.com/yourusername/rocket-motor-showroom/pkg/logger"
)

// DefaultCarouselInterval slaydlar almashish oralig'i
const DefaultCarouselInterval = 5 * time.Second

// Carousel bosh sahifa slaydlarini avtomatik aylantiradi. Slaydlar har
// safar manbadan o'qiladi, shuning uchun admin o'zgarishlari darhol ko'rinadi.
type Carousel struct {
	source   func() []entity.HeroSlide
	interval time.Duration

	mu    sync.Mutex
	index int
	reset chan struct{}
}

// NewCarousel yangi karusel yaratish
func NewCarousel(source func() []entity.HeroSlide, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultCarouselInterval
	}
	return &Carousel{
		source:   source,
		interval: interval,
		reset:    make(chan struct{}, 1),
	}
}

// Current joriy slayd, uning indeksi va jami slaydlar soni
func (c *Carousel) Current() (entity.HeroSlide, int, int, bool) {
	slides := c.source()

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(slides) == 0 {
		return entity.HeroSlide{}, 0, 0, false
	}
	c.index %= len(slides)
	return slides[c.index], c.index, len(slides), true
}

// Next keyingi slayd, oxiridan keyin boshiga qaytadi
func (c *Carousel) Next() {
	c.step(1)
	c.restart()
}

// Prev oldingi slayd
func (c *Carousel) Prev() {
	c.step(-1)
	c.restart()
}

// Select aniq slaydga o'tish
func (c *Carousel) Select(i int) error {
	n := len(c.source())
	if i < 0 || i >= n {
		return fmt.Errorf("%w: index %d of %d", ErrSlideNotFound, i, n)
	}

	c.mu.Lock()
	c.index = i
	c.mu.Unlock()

	c.restart()
	return nil
}

func (c *Carousel) step(delta int) {
	n := len(c.source())

	c.mu.Lock()
	defer c.mu.Unlock()

	if n == 0 {
		c.index = 0
		return
	}
	c.index = ((c.index%n)+delta+n) % n
}

// restart qo'lda o'tishdan keyin taymerni qayta boshlash
func (c *Carousel) restart() {
	select {
	case c.reset <- struct{}{}:
	default:
	}
}

// Run kontekst tugaguncha slaydlarni aylantiradi
func (c *Carousel) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	logx.Debug().Dur("interval", c.interval).Msg("karusel ishga tushdi")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.reset:
			ticker.Reset(c.interval)
		case <-ticker.C:
			c.step(1)
		}
	}
}
