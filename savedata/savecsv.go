package savedata

import (
	"encoding/csv"
	"errors"
	"os"
)

var ErrNotOpen = errors.New("csv not initialized")

type SaveCSV struct {
	Name string
	Fp   *os.File
	Data [][]string
}

func (mycsv *SaveCSV) NewCSV(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	mycsv.Name = filename
	mycsv.Fp = file
	mycsv.Data = make([][]string, 0)
	return nil
}

//writes all buffered rows and closes the file
func (mycsv *SaveCSV) CloseCSV() error {
	if mycsv.Fp == nil {
		return ErrNotOpen
	}
	w := csv.NewWriter(mycsv.Fp)
	if err := w.WriteAll(mycsv.Data); err != nil {
		mycsv.Fp.Close()
		return err
	}
	err := mycsv.Fp.Close()
	mycsv.Fp = nil
	return err
}

//Append one element to csv data, no actual write
func (mycsv *SaveCSV) AddOneToCSV(data []string) error {
	if mycsv.Fp == nil {
		return ErrNotOpen
	}
	mycsv.Data = append(mycsv.Data, data)
	return nil
}
