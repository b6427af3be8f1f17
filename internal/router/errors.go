// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import "github.com/markbookdev/markbookd/internal/calcerr"

func asStructured(err error) (*calcerr.Error, bool) {
	return calcerr.As(err)
}
