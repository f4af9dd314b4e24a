package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/url"

	"artifolio/config"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeAndCleanInputMiddleware strips markup from every string value of JSON,
// urlencoded and multipart bodies before handlers bind them. Uploaded files are untouched.
// Values are stored as plain text; escaping is left to whoever renders them.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		switch c.ContentType() {
		case binding.MIMEJSON:
			if !sanitizeJSONBody(c) {
				return
			}
		case binding.MIMEPOSTForm:
			if err := c.Request.ParseForm(); err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed form"})
				return
			}
			sanitizeValues(c.Request.PostForm)
			sanitizeValues(c.Request.Form)
		case binding.MIMEMultipartPOSTForm:
			if err := c.Request.ParseMultipartForm(int64(config.MAX_UPLOAD_MB) << 20); err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed form", "details": err.Error()})
				return
			}
			sanitizeValues(c.Request.PostForm)
			sanitizeValues(c.Request.Form)
			if c.Request.MultipartForm != nil {
				sanitizeValues(c.Request.MultipartForm.Value)
			}
		}

		c.Next()
	}
}

func sanitizeJSONBody(c *gin.Context) bool {
	buf, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return false
	}
	if len(bytes.TrimSpace(buf)) == 0 {
		c.Request.Body = io.NopCloser(bytes.NewReader(buf))
		return true
	}

	var body interface{}
	if err := json.Unmarshal(buf, &body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
		return false
	}

	newBody, _ := json.Marshal(sanitizeValue(body))
	c.Request.Body = io.NopCloser(bytes.NewReader(newBody))
	c.Request.ContentLength = int64(len(newBody))
	return true
}

func sanitizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return stripTags(t)
	case map[string]interface{}:
		for k, inner := range t {
			t[k] = sanitizeValue(inner)
		}
	case []interface{}:
		for i, inner := range t {
			t[i] = sanitizeValue(inner)
		}
	}
	return v
}

func sanitizeValues(values url.Values) {
	for k, vs := range values {
		for i, s := range vs {
			vs[i] = stripTags(s)
		}
		values[k] = vs
	}
}

// stripTags drops markup but leaves characters like & and ' as typed.
func stripTags(s string) string {
	return html.UnescapeString(strictPolicy.Sanitize(s))
}
