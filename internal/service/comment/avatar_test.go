package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProxyAvatar(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/avatar-placeholder.png"},
		{"https://www.gravatar.com/avatar/abc?d=mp", "https://cravatar.cn/avatar/abc?d=mp"},
		{"https://gravatar.com/avatar/abc", "https://cravatar.cn/avatar/abc"},
		{"https://cdn.example.com/me.png", "https://cdn.example.com/me.png"},
		{"/local.png", "/local.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProxyAvatar(tt.in), tt.in)
	}
}

func TestDefaultAvatar(t *testing.T) {
	// md5("user@example.com")
	assert.Equal(t,
		"https://cravatar.cn/avatar/b58996c504c5638798eb6b511e6f49af?d=mp",
		DefaultAvatar("  User@Example.com "))
}
