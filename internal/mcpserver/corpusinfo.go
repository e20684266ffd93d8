package mcpserver

// CorpusInfo describes the corpus conventions and search behavior for
// LLM consumers of the MCP tools.
const CorpusInfo = `# Raido Corpus Info

Raido searches a flat directory tree of plain-text documents. There is no
persistent index: the document cache is a snapshot of the directory, and every
query streams file contents.

## Documents

- Only regular files with the accepted extension (default ` + "`.txt`" + `,
  matched case-insensitively) are eligible; everything else is ignored.
- Documents are UTF-8 plain text, matched and returned line by line.
- ` + "`add_document`" + ` paths are relative to the corpus root; directory
  traversal is rejected.

## Search behavior

- Matching is case-insensitive substring containment; the returned line keeps
  its original case.
- Scoring: 10 per occurrence, +5 for a whole-word match (queries of 2+
  characters), +2 for short queries (4 characters or fewer). Scores only
  order results; their magnitude carries no other meaning.
- Results are sorted by score descending; ties keep discovery order.
- Scanning is work-bounded: deep in pagination the engine stops collecting
  once it has enough hits to fill the requested page with headroom. When that
  happens ` + "`total`" + ` undercounts and ` + "`truncated`" + ` is true.

## Maintenance tasks

- ` + "`cleanup`" + ` / ` + "`update-stats`" + `: rescan the corpus directory.
- ` + "`clear-all`" + `: best-effort delete of every cached document, then rescan.
- Any other task name is reported back with ` + "`success: false`" + `.
`
