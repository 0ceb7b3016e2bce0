package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_English(t *testing.T) {
	code := Detect("The quick brown fox jumps over the lazy dog and keeps on running.")
	assert.Equal(t, "en", code)
}

func TestDetect_Russian(t *testing.T) {
	code := Detect("Это очень длинное предложение, написанное на русском языке для проверки.")
	assert.Equal(t, "ru", code)
}

func TestDetect_EmptyDefaultsToEnglish(t *testing.T) {
	assert.Equal(t, DefaultLanguage, Detect(""))
	assert.Equal(t, DefaultLanguage, Detect("   \n\t "))
}

func TestDetect_GarbageDefaultsToEnglish(t *testing.T) {
	assert.Equal(t, DefaultLanguage, Detect("1234 5678 !!! ???"))
}

func TestDetect_Deterministic(t *testing.T) {
	text := "Die Würde des Menschen ist unantastbar und verpflichtet alle staatliche Gewalt."
	first := Detect(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Detect(text))
	}
}
