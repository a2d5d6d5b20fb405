package api

import (
	"bytes"

	"golang.org/x/net/html"
)

// findCSRFToken pulls the anti-forgery token out of a page, from the
// csrf-token meta tag or the csrf_token hidden input.
func findCSRFToken(body []byte) string {
	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "meta":
				if attrOf(tok, "name") == "csrf-token" {
					return attrOf(tok, "content")
				}
			case "input":
				if attrOf(tok, "name") == "csrf_token" {
					return attrOf(tok, "value")
				}
			}
		}
	}
}

// hasLoginForm reports whether a page still asks for a password.
func hasLoginForm(body []byte) bool {
	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data == "input" && attrOf(tok, "type") == "password" {
				return true
			}
		}
	}
}

func attrOf(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
