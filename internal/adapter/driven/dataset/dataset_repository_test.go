package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

var fixtureRows = [][]string{
	{" Date", "Daily Tests ", "Daily Cases", "Daily Recoveries", "Daily Deaths"},
	{"2020-03-01", "100", "10", "1", "0"},
	{"2020-03-02", "n/a", "12", "2", "1"},
	{"2020-03-03", "120", "15", "3", "1"},
}

const fixtureCSV = " Date,Daily Tests ,Daily Cases,Daily Recoveries,Daily Deaths\n" +
	"2020-03-01,100,10,1,0\n" +
	"2020-03-02,n/a,12,2,1\n" +
	"2020-03-03,120,15,3,1\n"

type fakeStorage struct {
	content  string
	name     string
	err      error
	gotURI   string
	uploaded []string
}

func (f *fakeStorage) Download(_ context.Context, uri, destDir string) (string, error) {
	f.gotURI = uri
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(destDir, f.name)
	return path, os.WriteFile(path, []byte(f.content), 0o644)
}

func (f *fakeStorage) Upload(_ context.Context, localPath, uriPrefix string) (string, error) {
	f.uploaded = append(f.uploaded, localPath)
	return uriPrefix + "/" + filepath.Base(localPath), nil
}

func (f *fakeStorage) CallerAccount(context.Context) (string, error) { return "123456789012", nil }

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &cells))
	}

	path := filepath.Join(t.TempDir(), "covid.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFixture(t, "covid.csv", fixtureCSV)

	table, err := NewDatasetRepository(nil).Load(context.Background(), path, repository.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, path, table.Source)
	assert.Equal(t, fixtureRows[0], table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, 2, table.Rows[0].Line)
	assert.Equal(t, 4, table.Rows[2].Line)
	assert.Equal(t, fixtureRows[2], table.Rows[1].Cells)
}

func TestLoadCSVLineNumbersSkipQuotedNewlines(t *testing.T) {
	content := "Date,Daily Tests,Daily Cases,Daily Recoveries,Daily Deaths\n" +
		"\"2020-03-01\n\",1,1,1,1\n" +
		"2020-03-02,2,2,2,2\n"
	path := writeFixture(t, "covid.csv", content)

	table, err := NewDatasetRepository(nil).Load(context.Background(), path, repository.LoadOptions{})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 2, table.Rows[0].Line)
	assert.Equal(t, 4, table.Rows[1].Line)
}

func TestLoadTSVAndDelimiterOverride(t *testing.T) {
	tsv := writeFixture(t, "covid.tsv", "Date\tDaily Tests\n2020-03-01\t5\n")
	table, err := NewDatasetRepository(nil).Load(context.Background(), tsv, repository.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Daily Tests"}, table.Header)
	assert.Equal(t, []string{"2020-03-01", "5"}, table.Rows[0].Cells)

	semi := writeFixture(t, "covid.csv", "Date;Daily Tests\n2020-03-01;5\n")
	table, err = NewDatasetRepository(nil).Load(context.Background(), semi, repository.LoadOptions{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Daily Tests"}, table.Header)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFixture(t, "empty.csv", "")
	_, err := NewDatasetRepository(nil).Load(context.Background(), path, repository.LoadOptions{})
	assert.ErrorIs(t, err, types.ErrNoData)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewDatasetRepository(nil).Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), repository.LoadOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFixture(t, "covid.parquet", "x")
	_, err := NewDatasetRepository(nil).Load(context.Background(), path, repository.LoadOptions{})
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestLoadWorkbookMatchesCSV(t *testing.T) {
	repo := NewDatasetRepository(nil)

	fromCSV, err := repo.Load(context.Background(), writeFixture(t, "covid.csv", fixtureCSV), repository.LoadOptions{})
	require.NoError(t, err)

	fromXLSX, err := repo.Load(context.Background(), writeWorkbook(t, "Sheet1", fixtureRows), repository.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, fromCSV.Header, fromXLSX.Header)
	assert.Equal(t, fromCSV.Rows, fromXLSX.Rows)
}

func TestLoadWorkbookNamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Data", fixtureRows)
	repo := NewDatasetRepository(nil)

	table, err := repo.Load(context.Background(), path, repository.LoadOptions{Sheet: "Data"})
	require.NoError(t, err)
	assert.Len(t, table.Rows, 3)

	_, err = repo.Load(context.Background(), path, repository.LoadOptions{Sheet: "Missing"})
	assert.ErrorContains(t, err, `sheet "Missing" not found`)
}

func TestLoadFromObjectStorage(t *testing.T) {
	storage := &fakeStorage{content: fixtureCSV, name: "daily.csv"}
	uri := "s3://bucket/data/daily.csv"

	table, err := NewDatasetRepository(storage).Load(context.Background(), uri, repository.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, uri, storage.gotURI)
	assert.Equal(t, uri, table.Source)
	assert.Len(t, table.Rows, 3)
}

func TestLoadFromObjectStorageErrors(t *testing.T) {
	_, err := NewDatasetRepository(nil).Load(context.Background(), "s3://bucket/daily.csv", repository.LoadOptions{})
	assert.ErrorContains(t, err, "object storage is not configured")

	boom := errors.New("access denied")
	_, err = NewDatasetRepository(&fakeStorage{err: boom}).Load(context.Background(), "s3://bucket/daily.csv", repository.LoadOptions{})
	assert.ErrorIs(t, err, boom)
}
