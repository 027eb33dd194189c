package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to interpret results.

func describeHistory() string {
	return `Builds a longitudinal quality dataset from git history: one record per
commit inside a trailing window, combining static measures of the changed
files with change entropy and running authorship aggregates.

USE WHEN:
- Assessing how code quality evolved over recent months
- Checking whether complexity or entropy is trending up before a release
- Measuring how widely codebase knowledge is shared across authors
- Producing a dataset for external trend analysis or plotting

INTERPRETING RESULTS:
- code_entropy near 0: commit concentrated in one file; higher values mean
  changes spread across many files (log2 of file count is the ceiling)
- unique_authors_per_file_avg near 1.0: files are single-owner; rising
  values mean knowledge is spreading
- commit_frequency_by_author is cumulative for that author at that commit
- trends: slope is per day; direction is polarity-aware (rising
  maintainability improves, rising complexity worsens)
- records are sorted by commit date ascending

METRICS RETURNED:
- Per-commit: files_changed, lines added/deleted, total cyclomatic
  complexity, maintainability index, cohesion (functions), coupling
  (imports), code entropy, author frequency, authors-per-file mean
- Summary: commit/author/file counts, entropy percentiles (P50/P90/P95),
  per-metric trend slopes with R-squared`
}

func describeExtract() string {
	return `Extracts the full commit history inside a trailing window as one JSON
document: identities, timestamps, messages, parents, per-file line churn,
and resolvable blob ids.

USE WHEN:
- Archiving a repository's commit metadata for offline analysis
- Feeding commit data to other tools that expect structured JSON
- Inspecting per-file churn without running the metric pipeline

INTERPRETING RESULTS:
- stats.files maps each changed path to its insertions and deletions
- tree_id and blob_ids are best-effort: an unreadable tree leaves them empty
- commits_skipped counts commits dropped for missing timestamps

METRICS RETURNED:
- Per-commit: hash, author, committer, date, message, parents, tree id,
  blob ids, per-file and total churn, changed file list
- Document: repository, generation time, window`
}

func describeSearch() string {
	return `Scans every file reachable from HEAD's tree for the given keywords and
reports matching lines.

USE WHEN:
- Locating markers, credentials, or API usage across a repository
- Auditing for specific terms before publishing code
- Finding call sites without cloning or checking out locally

INTERPRETING RESULTS:
- Matches are ordered by path then line; snippets are trimmed to 120 runes
- files_skipped covers binary, duplicate, oversize, and unreadable blobs
- ignore_case folds both the haystack and the keywords

METRICS RETURNED:
- Matches: keyword, path, line number, snippet
- Counters: files scanned, files skipped`
}
