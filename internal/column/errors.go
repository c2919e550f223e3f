package column

import "github.com/arloliu/seriesfile/errs"

var (
	errVarintOverflow = errs.ErrVarintOverflow
	errTruncated      = errs.ErrColumnTruncated
)
