package file

import (
	"io/ioutil"
	"os"
)

const tmpFilePrefix = "splitstore"

// atomicWriter replaces files by writing a temp file in tmpDir and renaming it
// over the destination. tmpDir must be on the same volume as the destinations,
// so that the rename is atomic: readers see either the old or the new content.
type atomicWriter struct {
	tmpDir string
}

func (w atomicWriter) write(dest string, data []byte) error {
	writesInflight.Inc()
	defer writesInflight.Dec()
	tmp, err := w.stage(data)
	if err != nil {
		return err
	}
	return w.commit(tmp, dest)
}

// stage durably writes data to a new temp file and returns its name
func (w atomicWriter) stage(data []byte) (string, error) {
	f, err := ioutil.TempFile(w.tmpDir, tmpFilePrefix)
	if err != nil {
		return "", err
	}
	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// commit moves a staged temp file over dest
func (w atomicWriter) commit(tmp, dest string) error {
	err := os.Rename(tmp, dest)
	if err != nil {
		os.Remove(tmp)
	}
	return err
}
