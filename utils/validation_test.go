package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("maria@example.com"))
	assert.True(t, IsValidEmail("maria.silva+tag@sub.example.com.br"))

	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("maria@"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("maria@example"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("Passw0rd123"))
	assert.True(t, IsValidPassword("aB3aB3aB"))

	// Each rule dropped in turn.
	assert.False(t, IsValidPassword("Pass0rd"))     // too short
	assert.False(t, IsValidPassword("passw0rd123")) // no upper
	assert.False(t, IsValidPassword("PASSW0RD123")) // no lower
	assert.False(t, IsValidPassword("Password"))    // no digit
	assert.False(t, IsValidPassword(""))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Maria Silva"))
	assert.True(t, IsValidName("  Jo  "))

	assert.False(t, IsValidName("m"))
	assert.False(t, IsValidName("  m  "))
	assert.False(t, IsValidName(""))
}

func TestIsAllowedImageFile(t *testing.T) {
	assert.True(t, IsAllowedImageFile("foto.jpg"))
	assert.True(t, IsAllowedImageFile("foto.JPEG"))
	assert.True(t, IsAllowedImageFile("avatar.png"))
	assert.True(t, IsAllowedImageFile("anim.gif"))

	assert.False(t, IsAllowedImageFile("script.exe"))
	assert.False(t, IsAllowedImageFile("doc.pdf"))
	assert.False(t, IsAllowedImageFile("semextensao"))
}
