package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/djobea/djobea-ai/internal/requests"
)

func TestDetectService(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"J'ai une fuite d'eau dans la cuisine", requests.ServicePlumbing},
		{"le robinet coule sans arrêt", requests.ServicePlumbing},
		{"plus de courant depuis ce matin", requests.ServiceElectric},
		{"le disjoncteur saute", requests.ServiceElectric},
		{"mon frigo ne refroidit plus", requests.ServiceAppliance},
		{"la machine à laver fait du bruit", requests.ServiceAppliance},
		{"bonjour, j'ai besoin d'aide", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectService(tt.text), "text: %q", tt.text)
	}
}

func TestAffirmativeAndNegative(t *testing.T) {
	assert.True(t, IsAffirmative("Oui"))
	assert.True(t, IsAffirmative("ok c'est parfait"))
	assert.False(t, IsAffirmative("non"))
	assert.False(t, IsAffirmative("non pas d'accord"), "a negative word vetoes the yes")
	assert.False(t, IsAffirmative(""))

	assert.True(t, IsNegative("Non"))
	assert.True(t, IsNegative("pas du tout"))
	assert.False(t, IsNegative("oui"))
}

func TestWantsCancellation(t *testing.T) {
	assert.True(t, WantsCancellation("je veux annuler"))
	assert.True(t, WantsCancellation("laisse tomber"))
	assert.True(t, WantsCancellation("finalement plus besoin"))
	assert.False(t, WantsCancellation("j'ai une fuite"))
}

func TestSoundsUrgent(t *testing.T) {
	assert.True(t, SoundsUrgent("c'est urgent !!"))
	assert.True(t, SoundsUrgent("venez vite svp"))
	assert.False(t, SoundsUrgent("quand vous pouvez"))
}
