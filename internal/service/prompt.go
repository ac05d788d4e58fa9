package service

import "strings"

const analysisPromptTemplate = `You are a professional ATS (Applicant Tracking System) and career intelligence engine with deep expertise in software engineering, data science, data analytics and big data roles.

Analyze the resume against the job description and return a COMPLETE, VALID, MACHINE-READABLE JSON object.

OUTPUT RULES:
1. Return ALL required fields.
2. Return valid JSON only. No markdown, no prose.
3. "phasedRoadmap" MUST be a non-empty ARRAY.
4. "missingSkills" lists ONLY technical hard skills (languages, frameworks, tools, platforms, databases, concepts such as AJAX or OOP). No soft skills.
5. Every item in "missingSkills" gets its own "phasedRoadmap" entry. Only tightly coupled standards (e.g. "HTML" + "CSS") may share one entry.
6. Every technical skill in "missingSkills" is also referenced by a "suggestions" item with category "resume" explaining where to add it.
7. Every learning resource has a real, publicly accessible HTTPS URL. No placeholders such as "#" or example.com.
8. If "missingSkills" is empty, build "phasedRoadmap" entries that strengthen the top 3 critical technical skills of the job description.

REQUIRED JSON STRUCTURE:
{
  "extractedJobTitle": "",
  "similarityPercentage": 0,
  "matchPercent": 0,
  "atsScore": 0,
  "atsScoreExplanation": "",
  "skillsFound": [],
  "missingSkills": [],
  "strengthAreas": [],
  "improvementAreas": [],
  "suggestions": [
    {"category": "resume", "priority": "high", "title": "", "description": ""}
  ],
  "phasedRoadmap": [
    {
      "skill": "Exact name of the missing skill",
      "phases": [
        {
          "phase": "Fundamentals",
          "goal": "",
          "duration": "1-2 weeks",
          "learningResources": {
            "courses": [{"title": "", "url": "https://", "provider": ""}],
            "youtube": [{"title": "", "url": "https://", "provider": ""}],
            "documentation": [{"title": "", "url": "https://", "provider": ""}],
            "projects": [{"title": "", "url": "https://", "provider": ""}]
          }
        }
      ]
    }
  ]
}

FIELD LOGIC:
- extractedJobTitle: inferred from the job description.
- similarityPercentage: semantic similarity between resume and job description, 0-100.
- matchPercent: ATS keyword match score, 0-100.
- atsScore: overall ATS score, 0-100, with a short justification in atsScoreExplanation.
- skillsFound: job description skills present in the resume.
- suggestions.priority: one of "high", "medium", "low".

RESUME:
{{RESUME}}

JOB DESCRIPTION:
{{JOB_DESCRIPTION}}
`

// BuildAnalysisPrompt renders the resume analysis prompt.
func BuildAnalysisPrompt(resumeText, jdText string) string {
	return strings.NewReplacer(
		"{{RESUME}}", strings.TrimSpace(resumeText),
		"{{JOB_DESCRIPTION}}", strings.TrimSpace(jdText),
	).Replace(analysisPromptTemplate)
}
