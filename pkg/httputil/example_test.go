package httputil_test

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/travelboss/daygrid/pkg/httputil"
)

func ExampleCache() {
	// Create a cache with 24-hour TTL in a temp directory
	dir := filepath.Join(os.TempDir(), "daygrid-example")
	cache, err := httputil.NewCache(dir, 24*time.Hour)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	// Store a fetched feed body
	data := map[string]string{"source": "work", "etag": "v1"}
	if err := cache.Set("ics:work:feed", data); err != nil {
		fmt.Println("Error:", err)
		return
	}

	// Retrieve the value
	var result map[string]string
	if ok, err := cache.Get("ics:work:feed", &result); ok && err == nil {
		fmt.Println("Source:", result["source"])
		fmt.Println("ETag:", result["etag"])
	}

	// Clean up
	os.RemoveAll(dir)
	// Output:
	// Source: work
	// ETag: v1
}

func ExampleCache_miss() {
	dir := filepath.Join(os.TempDir(), "daygrid-example-miss")
	cache, _ := httputil.NewCache(dir, time.Hour)
	defer os.RemoveAll(dir)

	// Try to get a non-existent key
	var result string
	ok, err := cache.Get("nonexistent", &result)
	fmt.Println("Found:", ok)
	fmt.Println("Error:", err)
	// Output:
	// Found: false
	// Error: <nil>
}

func ExampleNewCache_defaultDir() {
	// Pass empty string to use default directory (~/.cache/daygrid/)
	cache, err := httputil.NewCache("", 24*time.Hour)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Cache TTL:", cache.TTL())
	// Output:
	// Cache TTL: 24h0m0s
}
