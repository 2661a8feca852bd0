package comment

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

const avatarPlaceholder = "/avatar-placeholder.png"

// ProxyAvatar points gravatar images at the cravatar mirror.
func ProxyAvatar(raw string) string {
	if raw == "" {
		return avatarPlaceholder
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	if u.Hostname() == "www.gravatar.com" || u.Hostname() == "gravatar.com" {
		u.Host = "cravatar.cn"
		return u.String()
	}
	return raw
}

// DefaultAvatar derives the cravatar address for an email.
func DefaultAvatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://cravatar.cn/avatar/" + hex.EncodeToString(sum[:]) + "?d=mp"
}
