package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-placement-automation/internal/models"
)

func TestPPOSet_DeduplicatesByFullTuple(t *testing.T) {
	s := NewPPOSet()

	assert.True(t, s.Add(models.PPORecord{CompanyName: "Acme", StudentCount: 3}))
	assert.False(t, s.Add(models.PPORecord{CompanyName: "Acme", StudentCount: 3}))
	assert.True(t, s.Add(models.PPORecord{CompanyName: "Globex", StudentCount: 1}))

	assert.Equal(t, []models.PPORecord{
		{CompanyName: "Acme", StudentCount: 3},
		{CompanyName: "Globex", StudentCount: 1},
	}, s.Records())
	assert.Equal(t, 2, s.Len())
}

// Same company with a different count is a distinct tuple, not a duplicate.
func TestPPOSet_DifferentCountKept(t *testing.T) {
	s := NewPPOSet()
	s.Add(models.PPORecord{CompanyName: "Acme", StudentCount: 3})
	s.Add(models.PPORecord{CompanyName: "Acme", StudentCount: 4})
	assert.Equal(t, 2, s.Len())
}

func TestPPOSet_ConcurrentAdds(t *testing.T) {
	s := NewPPOSet()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				s.Add(models.PPORecord{CompanyName: "Acme", StudentCount: j % 10})
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	assert.Equal(t, 10, s.Len())
}
