package lawsite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	var fe FieldErrors
	require.True(t, errors.As(err, &fe), "expected FieldErrors, got %v", err)
	return fe
}

func TestCreateBlogInputValidate(t *testing.T) {
	tests := []struct {
		name   string
		in     CreateBlogInput
		fields []string
	}{
		{"valid", CreateBlogInput{Title: "Hello", Description: "A post body"}, nil},
		{"empty title", CreateBlogInput{Title: "", Description: "A post body"}, []string{"title"}},
		{"whitespace title", CreateBlogInput{Title: "   ", Description: "A post body"}, []string{"title"}},
		{"short description", CreateBlogInput{Title: "Hello", Description: "abcd"}, []string{"description"}},
		{"padded short description", CreateBlogInput{Title: "Hello", Description: "  abc  "}, []string{"description"}},
		{"both", CreateBlogInput{}, []string{"title", "description"}},
		{"bad image", CreateBlogInput{Title: "Hello", Description: "A post body", Images: []string{"ftp://x/y.png"}}, []string{"images"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			fe := fieldErrors(t, err)
			for _, f := range tt.fields {
				assert.Contains(t, fe, f)
			}
			assert.Len(t, fe, len(tt.fields))
		})
	}
}

func TestCreateBlogInputMessages(t *testing.T) {
	in := CreateBlogInput{Title: "", Description: "abc"}
	fe := fieldErrors(t, in.Validate())
	assert.Equal(t, []string{"Title is required."}, fe["title"])
	assert.Equal(t, []string{"Description must be at least 5 characters."}, fe["description"])
}

func TestCreateBlogInputTrimsAndCleansImages(t *testing.T) {
	in := CreateBlogInput{
		Title:       "  Hello  ",
		Description: "  Long enough  ",
		Images:      []string{" https://cdn.example.com/a.jpg ", "", "/public/uploads/b.jpg"},
	}
	require.NoError(t, in.Validate())
	assert.Equal(t, "Hello", in.Title)
	assert.Equal(t, "Long enough", in.Description)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "/public/uploads/b.jpg"}, in.Images)
}

func TestDescriptionCountsRunes(t *testing.T) {
	in := CreateBlogInput{Title: "Hi", Description: "ñandú"}
	assert.NoError(t, in.Validate())
}

func TestEditBlogInputValidate(t *testing.T) {
	empty := ""
	short := "abc"
	title := "  New Title "

	in := EditBlogInput{BlogID: "abc1234", Title: &title}
	require.NoError(t, in.Validate())
	assert.Equal(t, "New Title", *in.Title)
	assert.Nil(t, in.Description)

	in = EditBlogInput{BlogID: "bad"}
	fe := fieldErrors(t, in.Validate())
	assert.Equal(t, []string{"Invalid blog ID."}, fe["blogId"])

	in = EditBlogInput{BlogID: "abc1234", Title: &empty, Description: &short}
	fe = fieldErrors(t, in.Validate())
	assert.Contains(t, fe, "title")
	assert.Contains(t, fe, "description")

	in = EditBlogInput{BlogID: "abc1234"}
	assert.NoError(t, in.Validate(), "an empty patch is allowed")
}

func TestDeleteBlogInputValidate(t *testing.T) {
	assert.NoError(t, (&DeleteBlogInput{BlogID: "Zz09aB1"}).Validate())
	for _, id := range []string{"", "abc123", "abc12345", "abc-123", "abc 123"} {
		err := (&DeleteBlogInput{BlogID: id}).Validate()
		assert.Error(t, err, "id %q", id)
	}
}

func TestContactInputValidate(t *testing.T) {
	in := ContactInput{Name: " Jo ", Subject: "Hi", Message: "Test message"}
	require.NoError(t, in.Validate())
	assert.Equal(t, "Jo", in.Name)

	in = ContactInput{Name: "Jo", Subject: "Hi", Message: "   "}
	fe := fieldErrors(t, in.Validate())
	assert.Equal(t, FieldErrors{"message": {"Message is required."}}, fe)

	in = ContactInput{}
	fe = fieldErrors(t, in.Validate())
	assert.Len(t, fe, 3)
}

func TestValidImageURL(t *testing.T) {
	good := []string{"https://a.example/x.jpg", "http://a.example/x.png", "/public/uploads/x.jpg"}
	bad := []string{"//evil.example/x.jpg", "javascript:alert(1)", "https://", "not a url", "ftp://a.example/x"}
	for _, s := range good {
		assert.True(t, validImageURL(s), s)
	}
	for _, s := range bad {
		assert.False(t, validImageURL(s), s)
	}
}

func TestFieldErrorsErr(t *testing.T) {
	assert.NoError(t, FieldErrors{}.Err())
	fe := FieldErrors{}
	fe.Add("b", "two")
	fe.Add("a", "one")
	assert.Equal(t, "validation: a: one, b: two", fe.Err().Error())
}
