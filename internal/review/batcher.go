package review

import "sort"

// Batch is a group of files that fit within the token budget of one
// summary request.
type Batch struct {
	Files       []ReviewFile
	TotalTokens int
	solo        bool // solo batches don't accept additional files
}

// estimateTokens is a rough chars/4 heuristic over the raw patch text.
func estimateTokens(patch string) int {
	n := len(patch) / 4
	if n == 0 {
		n = 1
	}
	return n
}

// BatchFiles groups files into batches that fit within maxTokens using
// first-fit-decreasing bin packing. Files larger than 80% of the budget
// get a solo batch.
func BatchFiles(files []ReviewFile, maxTokens int) []Batch {
	if len(files) == 0 {
		return nil
	}

	sorted := make([]ReviewFile, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TokenEstimate > sorted[j].TokenEstimate
	})

	var batches []Batch

	for _, file := range sorted {
		if file.TokenEstimate > maxTokens*80/100 {
			batches = append(batches, Batch{
				Files:       []ReviewFile{file},
				TotalTokens: file.TokenEstimate,
				solo:        true,
			})
			continue
		}

		placed := false
		for i := range batches {
			if !batches[i].solo && batches[i].TotalTokens+file.TokenEstimate <= maxTokens {
				batches[i].Files = append(batches[i].Files, file)
				batches[i].TotalTokens += file.TokenEstimate
				placed = true
				break
			}
		}

		if !placed {
			batches = append(batches, Batch{
				Files:       []ReviewFile{file},
				TotalTokens: file.TokenEstimate,
			})
		}
	}

	return batches
}
