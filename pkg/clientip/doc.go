// Package clientip extracts the originating client's IP address from an
// *http.Request, with trust-gated handling of proxy forwarding headers.
//
// Forwarding headers are trivially spoofable, so both helpers take an
// explicit trustProxy flag. Only when the application declares that it
// sits behind a trusted reverse proxy are X-Forwarded-For and X-Real-IP
// consulted; otherwise the TCP peer address is authoritative.
//
//   - GetIP returns the single best client address.
//   - Chain returns the full forwarding chain, client first, ending with
//     the TCP peer address.
//
// # Usage
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		ip := clientip.GetIP(r, true)
//		log.Printf("client ip: %s", ip)
//	}
package clientip
