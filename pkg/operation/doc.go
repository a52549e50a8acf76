/*
Package operation runs the registration normalizer across a folder.

	+-------------+
	|  selector   |
	| (*-user.cfg)|
	+------+------+
	       |
	+------+------+
	|  normalize  |
	| (per file)  |
	+------+------+
	       |
	+------+------+
	|   status    |
	| (write/log) |
	+-------------+

🎯 Purpose:
- Pulls file paths lazily from the selector
- Hands each file's text to the normalizer
- Persists the text through status.FileManager only when a label changed
- Folds every file's decisions into one ordered run log

🔄 Flow:
1. Select the next file (cancellation is checked here, between files)
2. Read, normalize, optionally diff
3. Back up and write, unless the run is dry
4. Track the outcome and print a row
5. Write `{folder}-{M-D-YYYY}.txt` with the total line

⚡ Concurrency:
With workers > 1 files are processed in parallel through an errgroup. Each
started file owns a result slot appended in selection order, so the run log
and the totals never depend on completion order.

🚦 Failures:
A file that cannot be read, parsed, serialized or written becomes a failed
result with the line `For file {f}, processing failed: {err}`. With on_error
skip the run continues; with on_error abort it stops and returns the error
along with every result gathered so far.

🔍 Example:

	op, err := operation.New(operation.Options{
		Config: cfg,
		Files:  mgr,
		Status: mgr,
	})
	res, err := op.Run(ctx)
*/
package operation
