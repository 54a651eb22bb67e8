package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var orderNumberPattern = regexp.MustCompile(`^HR\d{13,16}$`)

func TestGenerateOrderNumberFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, orderNumberPattern, GenerateOrderNumber())
	}
}

func TestGenerateOrderNumberUniqueAcrossMilliseconds(t *testing.T) {
	// Le timestamp en millisecondes garantit l'unicité entre deux
	// instants distincts ; le suffixe ne sert qu'à départager la même ms
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		num := GenerateOrderNumber()
		assert.False(t, seen[num], "numéro dupliqué: %s", num)
		seen[num] = true
		time.Sleep(2 * time.Millisecond)
	}
}
