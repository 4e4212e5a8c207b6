package types

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rotblauer/trackd/types/possample"
	"github.com/tidwall/gjson"
)

var ErrDecodeSamples = fmt.Errorf("could not decode as samples, series, or ndsamples")

// DecodeSamplesShotgun is a serial collection of handy-bandy attempts
// to turn the input data into per-entity position sample series.
// Clients send position data in a few shapes:
//   - a flat JSON array of samples (one anonymous entity),
//   - a JSON object keyed by car/entity id, each value an array of samples,
//   - newline-delimited JSON samples (use ScanNDSamples for streams).
func DecodeSamplesShotgun(data []byte) (possample.Series, error) {
	parsed := gjson.ParseBytes(data)

	if parsed.IsArray() {
		samples := possample.Samples{}
		if err := json.Unmarshal(data, &samples); err != nil {
			return nil, err
		}
		if len(samples) == 0 {
			return nil, fmt.Errorf("empty sample set")
		}
		return possample.Series{"": samples}, nil
	}

	if parsed.IsObject() {
		// Every value must be an array of objects, else this is not a series.
		ok := true
		parsed.ForEach(func(_, value gjson.Result) bool {
			if !value.IsArray() {
				ok = false
			}
			return ok
		})
		if !ok {
			return nil, ErrDecodeSamples
		}
		series := possample.Series{}
		if err := json.Unmarshal(data, &series); err != nil {
			return nil, err
		}
		if len(series) == 0 {
			return nil, fmt.Errorf("empty series")
		}
		return series, nil
	}

	return nil, ErrDecodeSamples
}

// ScanNDSamples reads a stream of JSON sample messages from an io.Reader,
// calling onEach for each decoded sample.
// If the stream is encoded as a single JSON array, its elements are walked
// the same way.
func ScanNDSamples(body io.Reader, onEach func(ps *possample.PosSample) error) error {
	buf := bufio.NewReader(body)
	peek, err := buf.Peek(1)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewBuffer(peek))
	t, err := dec.Token()
	if err != nil {
		return err
	}
	dec = json.NewDecoder(buf)
	if t == json.Delim('[') {
		dec.Token()
	}
	for dec.More() {
		var msg json.RawMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("decode err: %T %w", err, err)
		}
		ps := &possample.PosSample{}
		if err := json.Unmarshal(msg, ps); err != nil {
			return err
		}
		if err := onEach(ps); err != nil {
			return err
		}
	}
	return nil
}
