package busy

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHide_NoBajaDeCero(t *testing.T) {
	b := New()
	b.Hide()
	b.Hide()
	assert.Equal(t, 0, b.Count())
	assert.False(t, b.Busy())
}

func TestShowHide_Conteo(t *testing.T) {
	tests := []struct {
		name       string
		show, hide int
		want       int
	}{
		{"más shows", 5, 2, 3},
		{"iguales", 3, 3, 0},
		{"más hides", 2, 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			for i := 0; i < tt.show; i++ {
				b.Show()
			}
			for i := 0; i < tt.hide; i++ {
				b.Hide()
			}
			assert.Equal(t, tt.want, b.Count())
		})
	}
}

func TestShowHide_Concurrente(t *testing.T) {
	b := New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Show()
		}()
	}
	wg.Wait()
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Hide()
		}()
	}
	wg.Wait()
	assert.Equal(t, 60, b.Count())
}

func TestTrack(t *testing.T) {
	b := New()
	var seen []int
	b.Subscribe(func(n int) { seen = append(seen, n) })

	err := b.Track(func() error {
		assert.True(t, b.Busy())
		return errors.New("falla")
	})

	assert.Error(t, err)
	assert.Equal(t, []int{1, 0}, seen)
}
