package testutil

// BanditReport is a bandit JSON report with one high and one low finding
const BanditReport = `{
  "errors": [],
  "generated_at": "2024-03-01T12:30:00Z",
  "metrics": {"_totals": {"SEVERITY.HIGH": 1, "SEVERITY.MEDIUM": 0, "SEVERITY.LOW": 1, "SEVERITY.UNDEFINED": 0}},
  "results": [
    {
      "code": "12 subprocess.call(cmd, shell=True)\n",
      "filename": "./widget/run.py",
      "issue_confidence": "HIGH",
      "issue_severity": "HIGH",
      "issue_text": "subprocess call with shell=True identified, security issue.",
      "line_number": 12,
      "line_range": [12],
      "more_info": "https://bandit.readthedocs.io/en/latest/plugins/b602_subprocess_popen_with_shell_equals_true.html",
      "test_id": "B602",
      "test_name": "subprocess_popen_with_shell_equals_true"
    },
    {
      "code": "1 assert user is not None\n",
      "filename": "./widget/core.py",
      "issue_confidence": "HIGH",
      "issue_severity": "LOW",
      "issue_text": "Use of assert detected.",
      "line_number": 1,
      "line_range": [1],
      "more_info": "https://bandit.readthedocs.io/en/latest/plugins/b101_assert_used.html",
      "test_id": "B101",
      "test_name": "assert_used"
    }
  ]
}`

// EmptyBanditReport is a bandit JSON report without findings
const EmptyBanditReport = `{
  "errors": [],
  "generated_at": "2024-03-01T12:30:00Z",
  "metrics": {"_totals": {"SEVERITY.HIGH": 0, "SEVERITY.MEDIUM": 0, "SEVERITY.LOW": 0, "SEVERITY.UNDEFINED": 0}},
  "results": []
}`
