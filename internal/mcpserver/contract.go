package mcpserver

// ContentFormatContract describes the portfolio document that LLM consumers
// should follow when drafting or editing content.
const ContentFormatContract = `# Folio Content Format

The whole site is one document, ` + "`" + `portfolio.yaml` + "`" + ` (or ` + "`" + `portfolio.toml` + "`" + `),
in the content directory. Saving it reloads every open page.

## Top-level keys

| Key            | Shape                                         | Notes |
|----------------|-----------------------------------------------|-------|
| meta           | title, description, theme                     | theme is the class on <html>, e.g. dark |
| profile        | name, initials, tagline, about[], email, ...  | name is required |
| nav            | list of {id, label}                           | ids: home, work, skills, about, testimonials, contact |
| projects       | list of {id, title, description, image, tags[], link, github} | id and title required, ids unique |
| tabs           | list of {id, label, entries[]}                | a tab with id all is required |
| skills         | list of {label, percentage, group}            | percentage 0..100 |
| skill_cards    | list of {label, icon}                         | |
| expertise      | list of {title, icon, accent, summary, badges[]} | |
| testimonials   | list of {quote, author, role}                 | quote and author required |
| clients        | list of {name, logo}                          | |
| contact        | intro, channels[] of {label, icon, href, text} | |
| footer         | credit, links[]                               | |

## Rules

1. Tab entries reference projects by id: ` + "`" + `{ref: project-id}` + "`" + `.
2. An entry may override the card image or link for that tab only:
   ` + "`" + `{ref: portfolio, link: https://example.com}` + "`" + `. An empty override clears it.
3. A project without an image shows ` + "`" + `/images/carreer.jpg` + "`" + `.
4. Images and files are served from ` + "`" + `/images/` + "`" + ` and ` + "`" + `/static/` + "`" + `.
5. Encoding is UTF-8.

## Example

` + "```" + `yaml
projects:
  - id: sentiment-analysis
    title: Sentiment Analysis Tool
    description: NLP model for customer reviews.
    tags: [Python, NLP]
    github: https://github.com/example/sentiment

tabs:
  - id: all
    label: All Projects
    entries:
      - ref: sentiment-analysis
  - id: ml
    label: Machine Learning
    entries:
      - ref: sentiment-analysis
        image: /images/sentiment-ml.png
` + "```" + `
`
