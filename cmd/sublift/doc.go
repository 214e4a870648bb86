// Command sublift extracts embedded subtitle tracks from media libraries.
package main
