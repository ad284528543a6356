package common

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

type FilePaths struct {
	Dir          string
	DirExist     bool
	Summary      string
	SummaryExist bool
}

//input is the scenario's result directory and the summary file name inside it
func CheckDataFiles(dir, summaryfile string) *FilePaths {
	fp := &FilePaths{Dir: dir, Summary: filepath.Join(dir, summaryfile)}
	info, err := os.Stat(dir)
	fp.DirExist = (err == nil && info.IsDir())
	_, err = os.Stat(fp.Summary)
	fp.SummaryExist = (err == nil)
	log.WithFields(log.Fields{
		"dir":     fp.Dir,
		"dir_ok":  fp.DirExist,
		"summary": fp.Summary,
		"sum_ok":  fp.SummaryExist,
	}).Debug("Checked data files")
	return fp
}
