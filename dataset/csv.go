// Package dataset provides loaders and generators for training data.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/YuminosukeSato/goknn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LoadCSV reads numeric training data from r. Every column but the last is a
// feature; the last column is the target. When hasHeader is true the first
// record is skipped.
func LoadCSV(r io.Reader, hasHeader bool) (X *mat.Dense, y *mat.Dense, err error) {
	reader := csv.NewReader(r)
	// FieldsPerRecord defaults to the first record's width, so ragged rows
	// surface as parse errors

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(err, "goknn: failed to parse CSV input")
	}
	if hasHeader && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, nil, errors.NewModelError("LoadCSV", "empty data", errors.ErrEmptyData)
	}

	nCols := len(records[0])
	if nCols < 2 {
		return nil, nil, errors.NewValueError("LoadCSV", "need at least one feature column and one target column")
	}

	nRows := len(records)
	X = mat.NewDense(nRows, nCols-1, nil)
	y = mat.NewDense(nRows, 1, nil)

	for i, record := range records {
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "goknn: non-numeric value %q at row %d column %d", field, i, j)
			}
			if j == nCols-1 {
				y.Set(i, 0, v)
			} else {
				X.Set(i, j, v)
			}
		}
	}

	if err := errors.CheckMatrix("LoadCSV", X, nRows, nCols-1); err != nil {
		return nil, nil, err
	}
	return X, y, nil
}

// LoadCSVFile は CSV ファイルから特徴行列とターゲット列を読み込む
func LoadCSVFile(path string, hasHeader bool) (*mat.Dense, *mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "goknn: failed to open dataset %s", path)
	}
	defer f.Close()

	return LoadCSV(f, hasHeader)
}
