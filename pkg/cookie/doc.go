// Package cookie provides HTTP cookie management with optional encryption
// and signing, plus the request-side codec used by the plinth context to
// decode every inbound cookie in one pass.
//
// A Manager without a secret handles plain cookies only. With a 32+ byte
// secret, SetEncrypted/GetEncrypted protect values with AES-GCM and
// SetSigned/GetSigned with HMAC-SHA256. DecodeAll decodes the full cookie
// jar of a request, decrypting when a secret is configured:
//
//	manager := cookie.New(
//	    cookie.WithSecret(cfg.String("app.key")),
//	    cookie.WithSecure(true),
//	)
//
//	values, _ := manager.DecodeAll(r) // map[string]string
//
// DecodeAll is deliberately forgiving: cookies that cannot be decrypted
// (set by third parties, or written under a rotated-out key) are omitted
// from the result instead of failing the request.
package cookie
