package chatbot

import "fmt"

// Button labels attached to bot messages
const (
	ButtonReturn   = "Return"
	ButtonLinkedIn = "LinkedIn"
	ButtonGitHub   = "GitHub"
	ButtonEmail    = "Email"
)

// About topics
const (
	TopicExperience = "Experience"
	TopicEducation  = "Education"
	TopicSkills     = "Technical Skills"
	TopicSocial     = "Social"
)

// AboutTopics lists the About menu buttons in display order
var AboutTopics = []string{TopicExperience, TopicEducation, TopicSkills, TopicSocial}

// Profile holds the owner details interpolated into canned replies
type Profile struct {
	Name         string
	ContactEmail string
	GitHubURL    string
	GitHubLabel  string
	LinkedInURL  string
}

// DefaultProfile is the site owner's profile
var DefaultProfile = Profile{
	Name:         "Yugyeong Na",
	ContactEmail: "zz6cod@gmail.com",
	GitHubURL:    "https://github.com/60cod",
	GitHubLabel:  "github.com/60cod",
	LinkedInURL:  "https://www.linkedin.com/in/na60",
}

// SocialLink returns the external link opened by a social button
func (p Profile) SocialLink(label string) (string, bool) {
	switch label {
	case ButtonLinkedIn:
		return p.LinkedInURL, true
	case ButtonGitHub:
		return p.GitHubURL, true
	case ButtonEmail:
		return "mailto:" + p.ContactEmail, true
	}
	return "", false
}

func greetingText(p Profile) string {
	return fmt.Sprintf("Hello, I'm %s. What would you like to explore?", p.Name)
}

const (
	emailPromptText      = "Please enter your email address to get started."
	messagePromptText    = "Great! Now please enter your message."
	emailInvalidText     = "⚠️ Please enter a valid email address."
	emailSentText        = "✅ Thank you! Your message has been sent successfully. I'll get back to you soon!"
	aboutPromptText      = "What would you like to know about me?"
	aboutFallbackText    = "I'd be happy to share more information. Please click on one of the buttons above."
	confirmationTemplate = "Would you like to send this message from %s?\n\nMessage: \"%s\""
)

func emailFailedText(p Profile) string {
	return fmt.Sprintf("Sorry, there was an error sending your message. Please try again later or contact me directly at %s.", p.ContactEmail)
}

const experienceText = `🏢 **Professional Experience**

**Full-stack Developer** | Artistry Community (Aug. 2025 – Present)
- Improved the personal information page with Next.js
- Built environments on AWS and setting up CI/CD pipelines

**Previous Projects | Spectra Inc. (Nov. 2022 – Jul. 2025)**
- Developed data processing and visualization APIs using Java and React
- Implemented real-time statistics using Java and Elasticsearch
- Performed zero-downtime AWS RDS deployments and optimized system performance
- Integrated KakaoTalk API and improved existing systems
- Leveraged AI to resolve development challenges and deliver multiple requirements in a short period
- Independently managed SM Lead operations for 90+ client servers`

const educationText = `🎓 **Education Background**

**Molecular Biology** | Jeonbuk National University
- Bioinformatics and computational methods exposure
- Data analysis and statistical reasoning
- Genomics and biological data handling
- Applied biotechnology and experimental automation thinking`

const skillsText = `⚡ **Technical Skills**

**Backend**
• JAVA, Spring Framework, JPA
• REST API, Kafka
• Microservices architecture

**Frontend**
• React, JavaScript, TypeScript
• Next.js, TailwindCSS
• Modern component-based development

**Databases & Search**
• PostgreSQL, MySQL
• ElasticSearch

**DevOps & Infrastructure**
• AWS (EC2, RDS, S3)
• Kubernetes, Docker, ArgoCD
• CI/CD, Jenkins, Git
• Nginx, Grafana, Prometheus

**Current Focus**
• Full-stack architecture
• Cloud-native development
• System design & Algorithms`

func socialText(p Profile) string {
	return fmt.Sprintf(`🌐 **Let's Connect**

**GitHub**
[%s](%s)
Check out my latest projects and contributions

**Email**
%s
Feel free to reach out for collaboration or opportunities

**LinkedIn**
[%s](%s)
Professional networking and career updates

I'm always open to discussing new opportunities, collaborations, or interesting technical challenges!`,
		p.GitHubLabel, p.GitHubURL, p.ContactEmail, p.Name, p.LinkedInURL)
}

// aboutText returns the canned reply for an About topic
func aboutText(p Profile, topic string) string {
	switch topic {
	case TopicExperience:
		return experienceText
	case TopicEducation:
		return educationText
	case TopicSkills:
		return skillsText
	case TopicSocial:
		return socialText(p)
	default:
		return aboutFallbackText
	}
}
