package newsroom

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// inputChecker trims and sanitises editor input before it reaches the store.
type inputChecker struct {
	validate *validator.Validate
	policy   *bluemonday.Policy
}

func newInputChecker() *inputChecker {
	validate := validator.New()

	// report json field names so the caller sees "imageUrl", not "ImageURL"
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &inputChecker{
		validate: validate,
		policy:   policy,
	}
}

// sanitizeHTML strips unsafe markup from a rich body.
func (c *inputChecker) sanitizeHTML(body string) string {
	return strings.TrimSpace(c.policy.Sanitize(body))
}

// article normalises in and reports every missing required field at once.
func (c *inputChecker) article(in ArticleInput) (ArticleInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Summary = strings.TrimSpace(in.Summary)
	in.Body = c.sanitizeHTML(in.Body)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Category = strings.TrimSpace(in.Category)
	in.ImageAlt = strings.TrimSpace(in.ImageAlt)

	tags := make([]string, 0, len(in.SeoTags))
	for _, tag := range in.SeoTags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	in.SeoTags = tags

	err := c.validate.Struct(in)
	if err == nil {
		return in, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return in, err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}

	return in, &ValidationError{Fields: fields}
}

// threadBody sanitises a thread update body; an empty result is rejected.
func (c *inputChecker) threadBody(body string) (string, error) {
	body = c.sanitizeHTML(body)
	if err := c.validate.Var(body, "required"); err != nil {
		return "", &ValidationError{Fields: []string{"body"}, Message: emptyReplyBody}
	}

	return body, nil
}

func pagination(page, pageSize int) error {
	var fields []string
	if page < 1 {
		fields = append(fields, "page")
	}
	if pageSize < 1 {
		fields = append(fields, "limit")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields, Message: "page and limit must be greater than 0"}
	}

	return nil
}
