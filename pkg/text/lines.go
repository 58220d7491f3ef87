package text

import "bytes"

// 📄 EachLine calls fn for every line in content, in order.
//
// Lines end at "\n" or "\r\n"; the terminator is not passed to fn. Content that
// ends with a terminator does not yield a trailing empty line, and empty content
// yields no lines at all. Iteration stops at the first error fn returns.
func EachLine(content []byte, fn func(line []byte) error) error {
	for len(content) > 0 {
		var line []byte
		idx := bytes.IndexByte(content, '\n')
		if idx < 0 {
			line, content = content, nil
		} else {
			line, content = content[:idx], content[idx+1:]
			line = bytes.TrimSuffix(line, []byte{'\r'})
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return nil
}
