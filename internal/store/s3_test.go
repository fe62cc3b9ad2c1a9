package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts map[string]string
	ct   map[string]string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.puts[key] = string(b)
	f.ct[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestUploader(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "lag_appearances.csv")
	pngPath := filepath.Join(dir, "lag_players_division_stack.png")
	require.NoError(t, os.WriteFile(csvPath, []byte("player\n"), 0o644))
	require.NoError(t, os.WriteFile(pngPath, []byte{0x89, 'P', 'N', 'G'}, 0o644))

	fs := &fakeS3{puts: map[string]string{}, ct: map[string]string{}}
	u := Uploader{Client: fs, Bucket: "b", Prefix: "/runs/2025/"}
	keys, err := u.UploadFiles(context.Background(), csvPath, pngPath)
	require.NoError(t, err)
	require.Equal(t, []string{"runs/2025/lag_appearances.csv", "runs/2025/lag_players_division_stack.png"}, keys)
	require.Equal(t, "player\n", fs.puts["b/runs/2025/lag_appearances.csv"])
	require.Equal(t, "image/png", fs.ct["b/runs/2025/lag_players_division_stack.png"])

	_, err = u.UploadFiles(context.Background(), filepath.Join(dir, "nope.png"))
	require.Error(t, err)

	require.Equal(t, "x.csv", Uploader{}.Key("/tmp/x.csv"))
}
