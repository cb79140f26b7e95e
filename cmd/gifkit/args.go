package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/automoto/gifsprite/shared/chromakey"
)

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: want %d comma-separated numbers", s, n)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

func parsePoint(s string) (image.Point, error) {
	v, err := parseInts(s, 2)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(v[0], v[1]), nil
}

func parseRGB(s string) (chromakey.RGB, error) {
	v, err := parseInts(s, 3)
	if err != nil {
		return chromakey.RGB{}, err
	}
	for _, c := range v {
		if c < 0 || c > 255 {
			return chromakey.RGB{}, fmt.Errorf("%q: channel %d out of range", s, c)
		}
	}
	return chromakey.RGB{R: uint8(v[0]), G: uint8(v[1]), B: uint8(v[2])}, nil
}

// colorList collects repeated -color flags.
type colorList []chromakey.RGB

func (l *colorList) String() string {
	parts := make([]string, len(*l))
	for i, c := range *l {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func (l *colorList) Set(s string) error {
	c, err := parseRGB(s)
	if err != nil {
		return err
	}
	*l = append(*l, c)
	return nil
}
