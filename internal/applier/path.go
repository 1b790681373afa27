package applier

import (
	"fmt"
	"strconv"
	"strings"
)

// segment is one step of a structural address: either an object key or
// an array index.
type segment struct {
	key     string
	index   int
	isIndex bool
}

// parsePath tokenizes a bracket/dot address such as
// "events[2].pages[0].list[5].parameters[0]" or "[3].name" into segments.
// The grammar matches what the parsers emit; anything else is an error.
func parsePath(path string) ([]segment, error) {
	var segs []segment
	i := 0
	for i < len(path) {
		switch path[i] {
		case '.':
			i++
		case '[':
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated index in path %q", path)
			}
			n, err := strconv.Atoi(path[i+1 : i+end])
			if err != nil {
				return nil, fmt.Errorf("bad index in path %q: %w", path, err)
			}
			segs = append(segs, segment{index: n, isIndex: true})
			i += end + 1
		default:
			j := i
			for j < len(path) && path[j] != '.' && path[j] != '[' {
				j++
			}
			segs = append(segs, segment{key: path[i:j]})
			i = j
		}
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	return segs, nil
}

// step descends one segment into a parsed JSON value. ok is false when
// the segment does not resolve against the current shape.
func step(v any, seg segment) (any, bool) {
	if seg.isIndex {
		arr, isArr := v.([]any)
		if !isArr || seg.index < 0 || seg.index >= len(arr) {
			return nil, false
		}
		return arr[seg.index], true
	}
	obj, isObj := v.(map[string]any)
	if !isObj {
		return nil, false
	}
	child, present := obj[seg.key]
	if !present {
		return nil, false
	}
	return child, true
}

// assign writes value at the final segment of a container. ok is false
// when the container shape does not match the segment.
func assign(container any, seg segment, value any) bool {
	if seg.isIndex {
		arr, isArr := container.([]any)
		if !isArr || seg.index < 0 || seg.index >= len(arr) {
			return false
		}
		arr[seg.index] = value
		return true
	}
	obj, isObj := container.(map[string]any)
	if !isObj {
		return false
	}
	if _, present := obj[seg.key]; !present {
		return false
	}
	obj[seg.key] = value
	return true
}
