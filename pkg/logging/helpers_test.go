package logging_test

import "os"

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // test temp dir
	return string(data), err
}
