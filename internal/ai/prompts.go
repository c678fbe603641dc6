package ai

import "fmt"

// Prompt templates for the generative rewrite strategy. Each template
// instructs the model to answer with the rewritten text only so the
// response can be passed through verbatim.

const summaryPromptTemplate = `Rewrite the following resume summary in the third person, without first-person pronouns, emphasizing measurable impact. Fold in the most relevant keywords from the job description where they are truthful. Respond with the rewritten summary only.

Summary:
%s

Job description:
%s`

const bulletPromptTemplate = `Rewrite the following resume bullet to start with a strong action verb and highlight a measurable result. Respond with a single bullet line starting with "• " and nothing else.

Bullet:
%s`

const sectionPromptTemplate = `Improve the following resume section. Rewrite long lines as achievement-focused bullets starting with action verbs; keep short lines such as headings and dates unchanged. Respond with the improved section text only.

Section:
%s`

const fullRewritePromptTemplate = `Rewrite the following resume into a clean ATS-friendly layout with SUMMARY, SKILLS, EXPERIENCE and EDUCATION sections. Keep every fact truthful to the original, start experience bullets with action verbs, and align wording with the job description. Respond with the rewritten resume text only.

Resume:
%s

Job description:
%s`

func summaryPrompt(summary, jobDescription string) string {
	return fmt.Sprintf(summaryPromptTemplate, summary, jobDescription)
}

func bulletPrompt(bullet string) string {
	return fmt.Sprintf(bulletPromptTemplate, bullet)
}

func sectionPrompt(sectionText string) string {
	return fmt.Sprintf(sectionPromptTemplate, sectionText)
}

func fullRewritePrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(fullRewritePromptTemplate, resumeText, jobDescription)
}
