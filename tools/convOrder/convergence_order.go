package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing the output of gospectral verify --csv")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	studies, err := readCSV(csvFile)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	keys := make([]string, 0, len(studies))
	for k := range studies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cs := studies[key]
		cs.Sort()
		fmt.Printf("Title = %s, Family = %s\n", cs.title, cs.family)
		fmt.Printf("%4s %14s %14s %14s %10s\n", "N", "OrthoMax", "RefMax", "RefMean", "Growth")
		for i := range cs.degree {
			growth := math.NaN()
			if i > 0 {
				growth = cs.refMAX[i] / cs.refMAX[i-1]
			}
			fmt.Printf("%4d %14.6e %14.6e %14.6e %10.3f\n",
				cs.degree[i], cs.orthoMAX[i], cs.refMAX[i], cs.refMean[i], growth)
		}
		if slope, ok := cs.GrowthRate(); ok {
			fmt.Printf("log10(orthonormality error) grows by %6.3f per degree\n", slope)
		}
	}
}

type ConvergenceStudy struct {
	title, family     string
	degree            []int
	orthoMAX, orthoMN []float64
	refMAX, refMean   []float64
}

func NewConvergenceStudy(title, family string) *ConvergenceStudy {
	return &ConvergenceStudy{
		title:  title,
		family: family,
	}
}

func (cs *ConvergenceStudy) Add(degree int, orthoMAX, orthoMean, refMAX, refMean float64) {
	cs.degree = append(cs.degree, degree)
	cs.orthoMAX = append(cs.orthoMAX, orthoMAX)
	cs.orthoMN = append(cs.orthoMN, orthoMean)
	cs.refMAX = append(cs.refMAX, refMAX)
	cs.refMean = append(cs.refMean, refMean)
}

func (cs *ConvergenceStudy) Len() int           { return len(cs.degree) }
func (cs *ConvergenceStudy) Less(i, j int) bool { return cs.degree[i] < cs.degree[j] }
func (cs *ConvergenceStudy) Swap(i, j int) {
	cs.degree[i], cs.degree[j] = cs.degree[j], cs.degree[i]
	cs.orthoMAX[i], cs.orthoMAX[j] = cs.orthoMAX[j], cs.orthoMAX[i]
	cs.orthoMN[i], cs.orthoMN[j] = cs.orthoMN[j], cs.orthoMN[i]
	cs.refMAX[i], cs.refMAX[j] = cs.refMAX[j], cs.refMAX[i]
	cs.refMean[i], cs.refMean[j] = cs.refMean[j], cs.refMean[i]
}

// Sort orders the study by degree.
func (cs *ConvergenceStudy) Sort() { sort.Sort(cs) }

// GrowthRate fits log10(orthonormality error) against degree, skipping exact
// zeros. It needs at least two usable entries.
func (cs *ConvergenceStudy) GrowthRate() (slope float64, ok bool) {
	var x, y []float64
	for i, e := range cs.orthoMAX {
		if e > 0 {
			x = append(x, float64(cs.degree[i]))
			y = append(y, math.Log10(e))
		}
	}
	if len(x) < 2 {
		return
	}
	_, slope = stat.LinearRegression(x, y, nil, false)
	return slope, true
}

func readCSV(csvFile string) (studies map[string]*ConvergenceStudy, err error) {
	var (
		records [][]string
		f       *os.File
		ok      bool
		cs      *ConvergenceStudy
	)
	studies = make(map[string]*ConvergenceStudy)
	if f, err = os.Open(csvFile); err != nil {
		return
	}
	defer f.Close()
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		// Header rows repeat when several runs are concatenated
		if rec[0] == "Title" {
			continue
		}
		if len(rec) < 7 {
			err = fmt.Errorf("line %d: want 7 fields, have %d", i+1, len(rec))
			return
		}
		title, family := rec[0], rec[1]
		var (
			n      int
			values [4]float64
		)
		if n, err = strconv.Atoi(rec[2]); err != nil {
			err = fmt.Errorf("line %d: %w", i+1, err)
			return
		}
		for k := range values {
			if values[k], err = strconv.ParseFloat(rec[3+k], 64); err != nil {
				err = fmt.Errorf("line %d: %w", i+1, err)
				return
			}
		}
		combTitle := title + family
		if cs, ok = studies[combTitle]; !ok {
			cs = NewConvergenceStudy(title, family)
			studies[combTitle] = cs
		}
		cs.Add(n, values[0], values[1], values[2], values[3])
	}
	return
}
