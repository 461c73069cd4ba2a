package internal

// Cookies decodes all request cookies through the configured codec.
// With app.key set, values are decrypted; without it they are parsed
// plain. The decode runs at most once per exchange: decryption is
// expensive, so later calls return the memoized result, error included.
func (c *requestContext) Cookies() (map[string]string, error) {
	if c.cookieLoaded {
		return c.cookieCache, c.cookieErr
	}

	c.cookieLoaded = true
	c.cookieCache, c.cookieErr = c.codec.DecodeAll(c.request)
	if c.cookieCache == nil {
		c.cookieCache = map[string]string{}
	}
	return c.cookieCache, c.cookieErr
}

// Cookie looks up a decoded cookie. Missing cookies never fail: the
// optional default (or "") is returned instead.
func (c *requestContext) Cookie(name string, def ...string) string {
	cookies, err := c.Cookies()
	if err == nil {
		if val, ok := cookies[name]; ok {
			return val
		}
	}
	if len(def) > 0 {
		return def[0]
	}
	return ""
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.cookieManager.Set(c.response, name, value, maxAge)
}

func (c *requestContext) SetCookieEncrypted(name, value string, maxAge int) error {
	return c.cookieManager.SetEncrypted(c.response, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookieManager.Delete(c.response, name)
}
