package avatar

import (
	"context"

	"github.com/dmitrijs2005/trackly/internal/filex"
)

// LocalStore writes avatars into a directory. The locator is the absolute
// file path.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Save(ctx context.Context, userID int64, img *Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return "", err
	}
	return filex.WriteFileAtomic(dir, fileName(img), img.Data)
}
