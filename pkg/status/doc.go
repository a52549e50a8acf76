/*
Package status manages file storage and outcome tracking for regnorm.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           |Progress |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Reads configuration files for the normalizer
- Saves normalized content atomically, with an optional .bak copy
- Tracks the outcome of every file (modified, unchanged, pending, failed)
- Reports progress through a FileFormatter

🤝 Interfaces:
- FileManager: file operations
- StatusReporter: outcome tracking and progress
- FileFormatter: message formatting

🔍 Example:

	mgr := status.NewManager(root, status.NewDefaultFileFormatter())

	content, err := mgr.ReadFile(ctx, path)
	...
	if err := mgr.BackupFile(ctx, path); err != nil {
		return err
	}
	err = mgr.WriteFileAtomic(ctx, path, normalized)

	mgr.TrackFile(ctx, status.FileInfo{Path: path, Status: status.StatusModified})
*/
package status
