package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"kitchen-planner/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	puts    map[string][]byte
	types   map[string]string
	deleted []string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{puts: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts[aws.ToString(in.Key)] = body
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func fileHeader(t *testing.T, name string, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="image"; filename="` + name + `"`},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestUploadFile(t *testing.T) {
	objects := newFakeObjects()
	store := NewAwsS3WithClient(objects, "kitchen", "ap-southeast-1")

	key, err := store.UploadFile(context.Background(), "menu-item-1", fileHeader(t, "soup.PNG", "image/png", []byte("png")), "menu-items", AllowImage...)
	require.NoError(t, err)

	assert.Equal(t, "menu-items/menu-item-1.png", key)
	assert.Equal(t, []byte("png"), objects.puts[key])
	assert.Equal(t, "image/png", objects.types[key])
}

func TestUploadFileRejectsType(t *testing.T) {
	store := NewAwsS3WithClient(newFakeObjects(), "kitchen", "ap-southeast-1")

	_, err := store.UploadFile(context.Background(), "x", fileHeader(t, "notes.txt", "text/plain", []byte("hi")), "menu-items", AllowImage...)
	assert.ErrorIs(t, err, domain.ErrInvalidImageFormat)
}

func TestPublicLinkRoundTrip(t *testing.T) {
	store := NewAwsS3WithClient(newFakeObjects(), "kitchen", "ap-southeast-1")

	link := store.GetPublicLinkKey("menu-items/a.png")
	assert.Equal(t, "https://kitchen.s3.ap-southeast-1.amazonaws.com/menu-items/a.png", link)
	assert.Equal(t, "menu-items/a.png", store.GetObjectKeyFromLink(link))
	assert.Equal(t, "", store.GetObjectKeyFromLink("https://elsewhere.example.com/a.png"))
}

func TestDisabledStorage(t *testing.T) {
	store := &awsS3{bucket: "", region: ""}

	_, err := store.UploadFile(context.Background(), "x", nil, "")
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.ErrorIs(t, store.DeleteFile(context.Background(), "x"), ErrStorageDisabled)
}
