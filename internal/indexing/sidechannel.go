package indexing

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/spf13/afero"

	"github.com/corpindex/company-search/model"
)

// IDListObserver appends every indexed company ID to a plain-text file, one
// ID per line. Downstream consumers tail the file to learn which companies
// have been (re)indexed.
type IDListObserver struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewIDListObserver creates an observer writing to path on fs.
func NewIDListObserver(fs afero.Fs, path string) *IDListObserver {
	return &IDListObserver{fs: fs, path: path}
}

// CompanyIndexed appends the company's ID to the list file.
func (o *IDListObserver) CompanyIndexed(company model.Company) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	file, err := o.fs.OpenFile(o.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open id list %s: %w", o.path, err)
	}
	defer file.Close()

	_, err = file.WriteString(strconv.FormatInt(company.ID, 10) + "\n")
	return err
}

// DiagnosticObserver writes a one-line summary of every indexed company to a
// diagnostic stream.
type DiagnosticObserver struct {
	w  io.Writer
	mu sync.Mutex
}

// NewDiagnosticObserver creates an observer writing to w.
func NewDiagnosticObserver(w io.Writer) *DiagnosticObserver {
	return &DiagnosticObserver{w: w}
}

// CompanyIndexed writes the summary line.
func (o *DiagnosticObserver) CompanyIndexed(company model.Company) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	_, err := fmt.Fprintf(o.w, "indexed company %d %q\n", company.ID, company.Name)
	return err
}
