package http

import (
	"net/http"
	"time"
)

const (
	CartCookieName = "cart"
	cartCookieTTL  = 30 * 24 * time.Hour
)

func readCartToken(r *http.Request) string {
	c, err := r.Cookie(CartCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func writeCartToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cartCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
